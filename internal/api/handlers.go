package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pasarela/internal/editor"
	"github.com/starford/pasarela/internal/showroom"
	"github.com/starford/pasarela/internal/view"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *showroom.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *showroom.Service) *Handler {
	return &Handler{svc: svc}
}

// Site handles GET /api/site.
//
//	@Summary	Brand header and contact link
//	@Tags		runway
//	@Produce	json
//	@Success	200	{object}	SiteResponse
//	@Failure	503	{object}	errResponse
//	@Router		/site [get]
func (h *Handler) Site(w http.ResponseWriter, _ *http.Request) {
	site, err := h.svc.Site()
	if err != nil {
		writeError(w, "site", err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// Runway handles GET /api/runway.
//
//	@Summary	Visible products for the current filter
//	@Tags		runway
//	@Produce	json
//	@Param		category	query		string	false	"Category"	Enums(all, women, men, accessory)
//	@Param		status		query		string	false	"Status"	Enums(all, available, made_to_order)
//	@Success	200			{object}	RunwayResponse
//	@Router		/runway [get]
func (h *Handler) Runway(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rw, err := h.svc.Runway(view.ParseFilter(q.Get("category"), q.Get("status")))
	if err != nil {
		writeError(w, "runway", err)
		return
	}
	writeJSON(w, http.StatusOK, rw)
}

// Detail handles GET /api/runway/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Detail(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "detail", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListProducts handles GET /api/admin/products.
//
//	@Summary	Admin listing in catalog order, archived included
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	ProductListResponse
//	@Router		/admin/products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	rows, err := h.svc.Rows()
	if err != nil {
		writeError(w, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, ProductListResponse{Products: rows, Total: len(rows)})
}

// Editor handles GET /api/admin/editor.
func (h *Handler) Editor(w http.ResponseWriter, _ *http.Request) {
	ev, err := h.svc.Editor()
	if err != nil {
		writeError(w, "editor", err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// NewProduct handles POST /api/admin/editor/new.
func (h *Handler) NewProduct(w http.ResponseWriter, _ *http.Request) {
	ev, err := h.svc.Create()
	if err != nil {
		writeError(w, "new product", err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// OpenProduct handles POST /api/admin/editor/open/{id}.
func (h *Handler) OpenProduct(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.Open(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "open product", err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// SaveProduct handles POST /api/admin/editor/save.
//
//	@Summary	Normalize and upsert the editor form
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SaveProductRequest	true	"Editor form"
//	@Success	200		{object}	models.Product
//	@Failure	400		{object}	errResponse
//	@Router		/admin/editor/save [post]
func (h *Handler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p, err := h.svc.Save(req)
	if err != nil {
		writeError(w, "save product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/admin/products/{id}?confirm=yes.
// Without confirm=yes the request is a no-op that returns the confirmation
// question to ask.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	confirmed := r.URL.Query().Get("confirm") == "yes"
	var prompt string
	deleted, err := h.svc.Delete(id, editor.ConfirmFunc(func(q string) bool {
		prompt = q
		return confirmed
	}))
	if err != nil {
		writeError(w, "delete product", err)
		return
	}
	if confirmed && !deleted {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	res := DeleteResponse{Deleted: deleted}
	if !confirmed {
		res.Prompt = prompt
	}
	writeJSON(w, http.StatusOK, res)
}

// ImportCatalog handles PUT /api/admin/products with a JSON array body.
//
//	@Summary	Replace the catalog
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	ImportResponse
//	@Failure	400	{object}	errResponse
//	@Router		/admin/products [put]
func (h *Handler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	n, err := h.svc.Import(data)
	if err != nil {
		writeError(w, "import catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Count: n})
}

// ExportCatalog handles GET /api/admin/export.
func (h *Handler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Export()
	if err != nil {
		writeError(w, "export catalog", err)
		return
	}
	w.Header().Set("ETag", out.ETag)
	if r.Header.Get("If-None-Match") == out.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+out.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}
