package api

import (
	"bytes"
	"encoding/json/v2"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
	"github.com/watchvaultapp/watchvault-server/internal/export"
)

// Export handlers render the full watchlist into a download artifact. The
// body is buffered so a render failure can still produce an error response
// instead of a truncated file.

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, s.container.Entries()); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeDownload(w, buf.Bytes(), "text/csv; charset=utf-8", export.FileName("csv", now), true)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, s.container.Entries(), now); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeDownload(w, buf.Bytes(), "application/json; charset=utf-8", export.FileName("json", now), true)
}

func (s *Server) handleExportPrint(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	title := r.URL.Query().Get("title")

	var buf bytes.Buffer
	if err := export.WritePrintable(&buf, s.container.Entries(), title, now); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The printable view opens in the browser rather than downloading.
	s.writeDownload(w, buf.Bytes(), "text/html; charset=utf-8", export.FileName("html", now), false)
}

// writeDownload sends a rendered export with cache-safe download headers.
func (s *Server) writeDownload(w http.ResponseWriter, data []byte, contentType, filename string, attachment bool) {
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition+`; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write export response", "error", err, "filename", filename)
	}
}

// writeError renders a domain error as JSON on the chi-direct routes,
// matching the shape RegisterErrorHandler produces for huma operations.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := &APIError{
		status:  http.StatusInternalServerError,
		Code:    string(apperrors.CodeInternal),
		Message: "Internal server error",
	}

	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		apiErr.status = domainErr.HTTPStatus()
		apiErr.Code = string(domainErr.Code)
		apiErr.Message = domainErr.Message
		apiErr.Details = domainErr.Details
	}

	s.logger.Error("Request failed", "error", err, "path", r.URL.Path, "status", apiErr.status)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.status)
	if werr := json.MarshalWrite(w, apiErr); werr != nil {
		s.logger.Error("Failed to encode error response", "error", werr)
	}
}
