// Package parser decodes the catalog and site configuration documents.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/models"
)

// ParseCatalog decodes a catalog document, which must be a JSON array of
// objects. A null or empty document is an empty catalog; null elements are
// empty records. Numbers are kept as json.Number so large numeric ids keep
// every digit. Errors wrap apperr.ErrMalformedCatalog and carry the decoder
// message.
func ParseCatalog(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Record{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedCatalog, err)
	}

	out := make([]models.Record, 0, len(elems))
	for i, raw := range elems {
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d is not an object", apperr.ErrMalformedCatalog, i)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRecord(raw json.RawMessage) (models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rec models.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = models.Record{}
	}
	return rec, nil
}

// ParseSiteConfig decodes the site configuration and fills defaults.
func ParseSiteConfig(data []byte) (models.SiteConfig, error) {
	var cfg models.SiteConfig
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &cfg); err != nil {
			return models.SiteConfig{}, fmt.Errorf("parser: site config: %w", err)
		}
	}
	return cfg.WithDefaults(), nil
}
