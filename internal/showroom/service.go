// Package showroom coordinates the catalog store, the editing workflow, the
// image stager and the loaded site configuration behind one command surface
// shared by the HTTP API, the MCP server and the CLI.
package showroom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/catalog"
	"github.com/starford/pasarela/internal/checksum"
	"github.com/starford/pasarela/internal/contact"
	"github.com/starford/pasarela/internal/editor"
	"github.com/starford/pasarela/internal/export"
	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/source"
	"github.com/starford/pasarela/internal/view"
)

const (
	// EventLoaded is published after the resources are (re)loaded.
	EventLoaded = "catalog.loaded"
	// EventChanged is published when the catalog source changed but unexported
	// edits were kept in place of it.
	EventChanged = "catalog.changed"
)

// Publisher receives catalog change notifications.
type Publisher interface {
	PublishProductEvent(kind, id string)
}

// Site is the public brand header.
type Site struct {
	BrandName   string `json:"brand_name"`
	RunwayTitle string `json:"runway_title"`
	HeroImage   string `json:"hero_image,omitempty"`
	ContactURL  string `json:"contact_url"`
}

// EditorView is the admin editor snapshot.
type EditorView struct {
	State     editor.State `json:"state"`
	EditingID string       `json:"editing_id,omitempty"`
	Form      editor.Form  `json:"form"`
	Dirty     bool         `json:"dirty"`
}

// StagedImage describes one staged upload.
type StagedImage struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Size  int64  `json:"size"`
}

// Export is a rendered products.json.
type Export struct {
	Name string
	Data []byte
	ETag string
}

// Service serializes every command with a mutex so each user action is
// handled fully before the next.
type Service struct {
	mu sync.Mutex

	store  *catalog.Store
	editor *editor.Workflow
	pub    Publisher
	logger *slog.Logger
	brand  string

	loaded   bool
	loadErr  error
	dirty    bool
	site     models.SiteConfig
	labels   view.Labels
	resolver *contact.LinkResolver
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sends change events to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithBrand overrides the brand used to name image archives.
func WithBrand(brand string) Option {
	return func(s *Service) { s.brand = brand }
}

// WithAssetDir sets the directory staged images are placed under.
func WithAssetDir(dir string) Option {
	return func(s *Service) {
		s.editor = editor.New(s.store, export.NewStager(dir), s.notify)
	}
}

// New creates a service around store. It reports unavailable until
// SetLoaded is called.
func New(store *catalog.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		site:   models.SiteConfig{}.WithDefaults(),
		labels: view.NewLabels(nil),
	}
	s.editor = editor.New(store, nil, s.notify)
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = contact.NewResolver(s.site.Contact)
	return s
}

func (s *Service) notify(e editor.Event) {
	s.logger.Info("catalog changed", slog.String("kind", e.Kind), slog.String("id", e.ID))
	if s.pub != nil {
		s.pub.PublishProductEvent(e.Kind, e.ID)
	}
}

// SetLoaded installs freshly loaded resources and marks the service ready.
// While the store holds edits made since the last load, only the site
// configuration is replaced and the catalog records are ignored.
func (s *Service) SetLoaded(res source.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.site = res.Site.WithDefaults()
	s.labels = view.NewLabels(s.site.Labels)
	s.resolver = contact.NewResolver(s.site.Contact)
	s.loadErr = nil

	if s.loaded && s.dirty {
		s.logger.Warn("catalog source changed, keeping unexported edits",
			slog.Int("products", s.store.Len()), slog.Int("source_products", len(res.Records)))
		if s.pub != nil {
			s.pub.PublishProductEvent(EventChanged, "")
		}
		return
	}

	s.store.Load(res.Records)
	s.editor.Refresh()
	s.loaded = true
	s.dirty = false

	s.logger.Info("catalog loaded", slog.Int("products", s.store.Len()), slog.String("brand", s.site.BrandName))
	if s.pub != nil {
		s.pub.PublishProductEvent(EventLoaded, "")
	}
}

// SetLoadError records a failed load. A service that loaded before keeps
// serving its last good catalog.
func (s *Service) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = err
	s.logger.Error("catalog load failed", slog.String("error", err.Error()))
}

// Ready returns nil once a catalog has been loaded.
func (s *Service) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyLocked()
}

func (s *Service) readyLocked() error {
	if s.loaded {
		return nil
	}
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", apperr.ErrCatalogUnavailable, s.loadErr)
	}
	return apperr.ErrCatalogUnavailable
}

// Site returns the brand header.
func (s *Service) Site() (Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return Site{}, err
	}
	return Site{
		BrandName:   s.site.BrandName,
		RunwayTitle: s.site.RunwayTitle,
		HeroImage:   s.site.HeroImage,
		ContactURL:  s.resolver.CallToAction(),
	}, nil
}

// Runway returns the visible cards for f.
func (s *Service) Runway(f view.Filter) (view.Runway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return view.Runway{}, err
	}
	return view.OnFilterChange(s.store.List(), s.labels, f), nil
}

// Detail returns the runway detail for id. Archived products are not public.
func (s *Service) Detail(id string) (view.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return view.Detail{}, err
	}
	p, ok := s.store.Find(id)
	if !ok || p.Status == models.StatusArchived {
		return view.Detail{}, fmt.Errorf("showroom: product %s: %w", id, apperr.ErrNotFound)
	}
	return view.NewDetail(p, s.labels, s.resolver), nil
}

// Products returns every product in store order, archived included.
func (s *Service) Products() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return s.store.List(), nil
}

// Product returns one product by id, archived included.
func (s *Service) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return models.Product{}, err
	}
	p, ok := s.store.Find(id)
	if !ok {
		return models.Product{}, fmt.Errorf("showroom: product %s: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

// Rows returns the admin listing.
func (s *Service) Rows() ([]view.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return view.Rows(s.store.List(), s.labels), nil
}

// Editor returns the current editor snapshot.
func (s *Service) Editor() (EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return EditorView{}, err
	}
	return s.editorViewLocked(), nil
}

func (s *Service) editorViewLocked() EditorView {
	return EditorView{
		State:     s.editor.State(),
		EditingID: s.editor.EditingID(),
		Form:      s.editor.Form(),
		Dirty:     s.dirty,
	}
}

// Create clears the editor for a new product.
func (s *Service) Create() (EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return EditorView{}, err
	}
	s.editor.OnCreate()
	return s.editorViewLocked(), nil
}

// Open loads product id into the editor.
func (s *Service) Open(id string) (EditorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return EditorView{}, err
	}
	if _, err := s.editor.OnOpen(id); err != nil {
		return EditorView{}, err
	}
	return s.editorViewLocked(), nil
}

// Save normalizes and upserts the submitted form.
func (s *Service) Save(f editor.Form) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return models.Product{}, err
	}
	p := s.editor.OnSave(f)
	s.dirty = true
	return p, nil
}

// Delete removes product id when c confirms. A declined or unknown delete
// reports false.
func (s *Service) Delete(id string, c editor.Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return false, err
	}
	deleted := s.editor.OnDelete(id, c)
	if deleted {
		s.dirty = true
	}
	return deleted, nil
}

// Import replaces the catalog with the JSON array in data.
func (s *Service) Import(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return 0, err
	}
	n, err := s.editor.OnImport(data)
	if err != nil {
		return 0, err
	}
	s.dirty = true
	return n, nil
}

// Export renders the catalog as products.json with a content ETag.
func (s *Service) Export() (Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return Export{}, err
	}
	data, err := export.Catalog(s.store.List())
	if err != nil {
		return Export{}, err
	}
	return Export{Name: export.FileName, Data: data, ETag: checksum.ETag(data)}, nil
}

// Images lists the staged uploads.
func (s *Service) Images() ([]StagedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	return s.imagesLocked(), nil
}

func (s *Service) imagesLocked() []StagedImage {
	staged := s.editor.Stager().Staged()
	out := make([]StagedImage, len(staged))
	for i, st := range staged {
		out[i] = StagedImage{Index: i, Path: st.Path, Size: st.File.Size}
	}
	return out
}

// Stage stages each file, syncing the editor's images field, and returns the
// resulting staged list.
func (s *Service) Stage(files ...export.File) ([]StagedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	for _, f := range files {
		p, added := s.editor.OnStage(f)
		if !added {
			s.logger.Debug("image already staged", slog.String("path", p))
		}
	}
	return s.imagesLocked(), nil
}

// ImagePath returns the asset path a file named name is staged under.
func (s *Service) ImagePath(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Stager().PathFor(name)
}

// Unstage removes the staged image at index i.
func (s *Service) Unstage(i int) ([]StagedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	if err := s.editor.OnUnstage(i); err != nil {
		return nil, err
	}
	return s.imagesLocked(), nil
}

// ArchiveName is the download name of the image bundle.
func (s *Service) ArchiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brand != "" {
		return export.ArchiveName(s.brand)
	}
	return export.ArchiveName(s.site.BrandName)
}

// Bundle writes the staged images as a zip archive to w. The archive is
// built in memory first so nothing reaches w when bundling fails.
func (s *Service) Bundle(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	staged := s.editor.Stager().Staged()
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := export.Bundle(ctx, &buf, staged); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
