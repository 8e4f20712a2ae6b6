// Package source fetches the site configuration and catalog resources, from
// the local data directory or over HTTP, and watches the data directory for
// changes.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/parser"
	"github.com/starford/pasarela/internal/storage"
)

// Result is a fully loaded pair of resources.
type Result struct {
	Site    models.SiteConfig
	Records []models.Record
}

// Loader resolves resource references. A reference starting with http:// or
// https:// is fetched over HTTP; anything else is a path in the data directory.
type Loader struct {
	files  storage.Provider
	client *http.Client
}

// NewLoader creates a loader. files may be nil when only URLs are used; a nil
// client means http.DefaultClient.
func NewLoader(files storage.Provider, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{files: files, client: client}
}

// Load fetches both resources concurrently and parses them. It fails if
// either resource fails.
func (l *Loader) Load(ctx context.Context, configRef, catalogRef string) (Result, error) {
	var (
		res     Result
		cfgData []byte
		catData []byte
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cfgData, err = l.Fetch(gctx, configRef)
		return err
	})
	g.Go(func() error {
		var err error
		catData, err = l.Fetch(gctx, catalogRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	site, err := parser.ParseSiteConfig(cfgData)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", configRef, err)
	}
	recs, err := parser.ParseCatalog(catData)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", catalogRef, err)
	}
	res.Site = site
	res.Records = recs
	return res, nil
}

// Fetch returns the raw bytes of ref.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if IsURL(ref) {
		return l.fetchHTTP(ctx, ref)
	}
	if l.files == nil {
		return nil, fmt.Errorf("load %s: no data directory configured", ref)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := l.files.Read(ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Ref: url, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return data, nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Ref  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("load %s: HTTP %d", e.Ref, e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// IsURL reports whether ref names an HTTP resource.
func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
