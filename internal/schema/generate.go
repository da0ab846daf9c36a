package schema

// GenerateResponse is the caller-facing envelope for a script generation
// request. Errors is omitted when every source was processed; a request can
// succeed while individual sources failed, so callers must inspect the
// counts and Errors rather than the status code alone.
type GenerateResponse struct {
	Success        bool     `json:"success"`
	Data           string   `json:"data"`
	FilesProcessed int      `json:"filesProcessed"`
	URLsProcessed  int      `json:"urlsProcessed"`
	Errors         []string `json:"errors,omitempty"`
	Message        string   `json:"message"`
}
