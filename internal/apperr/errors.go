// Package apperr defines sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrNothingStaged      = errors.New("no images staged")
	ErrCatalogUnavailable = errors.New("could not load catalog")
	ErrMalformedCatalog   = errors.New("malformed catalog")
)
