// Package extract turns raw sources (uploaded files, web URLs) into plain text.
package extract

// FileSource references an uploaded file stored on disk for this request.
// The backing file is removed once extraction has been attempted.
type FileSource struct {
	Path         string
	OriginalName string
	Ext          string
}

// ID returns the caller-facing identifier for the source.
func (s FileSource) ID() string { return s.OriginalName }

// URLSource references a web page supplied by URL.
type URLSource struct {
	Raw string
}

// ID returns the caller-facing identifier for the source.
func (s URLSource) ID() string { return s.Raw }
