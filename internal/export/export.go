// Package export serializes the catalog for download and packages staged
// images into a zip archive.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/starford/pasarela/internal/models"
)

// FileName is the name the exported catalog is offered under.
const FileName = "products.json"

// Catalog returns products as an indented JSON array in canonical field order.
func Catalog(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal catalog: %w", err)
	}
	return data, nil
}
