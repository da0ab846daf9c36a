package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/podforge/podforge/internal/config"
	"github.com/podforge/podforge/internal/extract"
	"github.com/podforge/podforge/internal/schema"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsHTTPError checks whether an error is an *HTTPError.
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// ParseAudioRequest decodes and validates a TTS request body based on Content-Type.
func ParseAudioRequest(r *http.Request) (*schema.AudioRequest, error) {
	var req schema.AudioRequest

	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch strings.ToLower(mediaType) {
	case "application/json", "":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	case "application/msgpack":
		if err := msgpack.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid request body"}
		}
	default:
		return nil, &HTTPError{Status: http.StatusUnsupportedMediaType, Message: "Unsupported content type"}
	}

	if err := req.Validate(); err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	return &req, nil
}

// GenerateRequest is a parsed and validated script generation request. Files
// have already been persisted under the uploads directory.
type GenerateRequest struct {
	Prompt        string
	TargetMinutes string
	URLFields     []string
	Files         []extract.FileSource
}

// ParseGenerateRequest validates the multipart form and stores accepted
// uploads. Violations are rejected here, before any extraction is attempted;
// on rejection no stored upload is left behind.
func ParseGenerateRequest(r *http.Request, cfg *config.UploadsConfig) (*GenerateRequest, error) {
	if err := r.ParseMultipartForm(cfg.MaxFileSize*int64(cfg.MaxFiles) + (1 << 20)); err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid multipart form"}
	}

	prompt := strings.TrimSpace(r.FormValue("prompt"))
	if prompt == "" {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Prompt is required"}
	}

	req := &GenerateRequest{
		Prompt:        prompt,
		TargetMinutes: strings.TrimSpace(r.FormValue("targetMinutes")),
	}

	if r.MultipartForm != nil {
		req.URLFields = r.MultipartForm.Value["urls"]
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}
	if len(headers) > cfg.MaxFiles {
		return nil, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("At most %d files are allowed per request", cfg.MaxFiles),
		}
	}

	for _, header := range headers {
		src, err := storeUpload(header, cfg)
		if err != nil {
			cleanupFiles(req.Files)
			return nil, err
		}
		req.Files = append(req.Files, src)
	}

	return req, nil
}

func storeUpload(header *multipart.FileHeader, cfg *config.UploadsConfig) (extract.FileSource, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extract.AllowedExtension(ext) {
		return extract.FileSource{}, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "Only PDF, TXT, and MD files are allowed",
		}
	}
	if header.Size > cfg.MaxFileSize {
		return extract.FileSource{}, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("File %s exceeds the %d MB size limit", header.Filename, cfg.MaxFileSize>>20),
		}
	}

	src, err := header.Open()
	if err != nil {
		return extract.FileSource{}, &HTTPError{Status: http.StatusBadRequest, Message: "Invalid file upload"}
	}
	defer src.Close()

	path := filepath.Join(cfg.Dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return extract.FileSource{}, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return extract.FileSource{}, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return extract.FileSource{}, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}

	return extract.FileSource{
		Path:         path,
		OriginalName: header.Filename,
		Ext:          ext,
	}, nil
}

func cleanupFiles(files []extract.FileSource) {
	for _, f := range files {
		os.Remove(f.Path)
	}
}
