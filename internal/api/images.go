package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pasarela/internal/export"
	"github.com/starford/pasarela/internal/showroom"
)

const maxUploadBytes = 50 << 20 // 50 MB

// ImageHandler stages uploaded images and serves the image bundle.
type ImageHandler struct {
	svc *showroom.Service
}

// NewImageHandler creates an image handler.
func NewImageHandler(svc *showroom.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// List handles GET /api/admin/images.
func (h *ImageHandler) List(w http.ResponseWriter, _ *http.Request) {
	imgs, err := h.svc.Images()
	if err != nil {
		writeError(w, "list images", err)
		return
	}
	writeJSON(w, http.StatusOK, ImagesResponse{Images: imgs})
}

// Upload handles POST /api/admin/images (multipart/form-data, one or more
// "file" fields).
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}

	files := make([]export.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("failed to open %s", fh.Filename)))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("failed to read %s", fh.Filename)))
			return
		}
		files = append(files, export.BytesFile(fh.Filename, data))
	}

	imgs, err := h.svc.Stage(files...)
	if err != nil {
		writeError(w, "stage images", err)
		return
	}
	writeJSON(w, http.StatusCreated, ImagesResponse{Images: imgs})
}

// Unstage handles DELETE /api/admin/images/{index}.
func (h *ImageHandler) Unstage(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
		return
	}
	imgs, err := h.svc.Unstage(i)
	if err != nil {
		writeError(w, "unstage image", err)
		return
	}
	writeJSON(w, http.StatusOK, ImagesResponse{Images: imgs})
}

// Bundle handles GET /api/admin/images/bundle.
func (h *ImageHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Bundle(r.Context(), &buf); err != nil {
		writeError(w, "bundle images", err)
		return
	}
	name := h.svc.ArchiveName()
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("bundle write failed", slog.String("error", err.Error()))
	}
}
