package api

import (
	"encoding/json/v2"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Poster routes stream image bytes, so they use chi directly instead of huma.

func (s *Server) handleGetPoster(w http.ResponseWriter, r *http.Request) {
	size := chi.URLParam(r, "size")
	posterPath := chi.URLParam(r, "path")

	data, err := s.posters.Get(r.Context(), size, posterPath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", posterContentType(posterPath))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	// Catalog poster paths are content-addressed, so long cache lifetimes are safe.
	w.Header().Set("Cache-Control", "public, max-age=604800")

	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write poster response", "error", err, "path", posterPath)
	}
}

func (s *Server) handleGetBlurHash(w http.ResponseWriter, r *http.Request) {
	posterPath := chi.URLParam(r, "path")

	hash, err := s.posters.BlurHash(r.Context(), posterPath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=604800")
	if err := json.MarshalWrite(w, map[string]string{"blurhash": hash}); err != nil {
		s.logger.Error("Failed to encode blurhash response", "error", err)
	}
}

func posterContentType(posterPath string) string {
	switch path.Ext(posterPath) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
