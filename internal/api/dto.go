package api

import (
	"github.com/starford/pasarela/internal/editor"
	"github.com/starford/pasarela/internal/showroom"
	"github.com/starford/pasarela/internal/view"
)

// SaveProductRequest is the editor form submitted on save.
type SaveProductRequest = editor.Form

// EditorResponse is the editor state (aliased from the domain layer).
type EditorResponse = showroom.EditorView

// SiteResponse is the brand header (aliased from the domain layer).
type SiteResponse = showroom.Site

// RunwayResponse wraps the visible cards and the filter that produced them.
type RunwayResponse = view.Runway

// ProductListResponse wraps the admin listing.
type ProductListResponse struct {
	Products []view.Row `json:"products" validate:"required"`
	Total    int        `json:"total" example:"12" validate:"required"`
}

// ImportResponse is returned after a catalog import.
type ImportResponse struct {
	Count int `json:"count" example:"12" validate:"required"`
}

// DeleteResponse reports whether a product was removed. An unconfirmed
// request carries the question to confirm.
type DeleteResponse struct {
	Deleted bool   `json:"deleted" example:"true"`
	Prompt  string `json:"prompt,omitempty" example:"Delete \"Coat\"?"`
}

// ImagesResponse lists staged images.
type ImagesResponse struct {
	Images []showroom.StagedImage `json:"images" validate:"required"`
}
