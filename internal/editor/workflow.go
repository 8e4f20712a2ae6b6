// Package editor implements the admin editing workflow: a single form bound
// to one product at a time, with command handlers for create, open, save,
// delete, import and image staging.
package editor

import (
	"fmt"
	"strings"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/catalog"
	"github.com/starford/pasarela/internal/export"
	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/normalize"
	"github.com/starford/pasarela/internal/parser"
)

// State is the workflow state.
type State string

const (
	StateIdle            State = "idle"
	StateEditingExisting State = "editing_existing"
	StateEditingNew      State = "editing_new"
)

// Event kinds reported to the notifier.
const (
	EventCreated  = "product.created"
	EventUpdated  = "product.updated"
	EventDeleted  = "product.deleted"
	EventImported = "catalog.imported"
	EventStaged   = "images.staged"
)

// Event describes a completed mutation.
type Event struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// Notifier receives events after each mutation.
type Notifier func(Event)

// Confirmer answers a yes/no question put to the operator.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always is a Confirmer that answers yes or no without asking.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string) bool { return bool(a) }

// Workflow binds the editor form to the catalog store. It is not safe for
// concurrent use; callers handle one action fully before the next.
type Workflow struct {
	store  *catalog.Store
	stager *export.Stager
	notify Notifier

	state     State
	editingID string
	form      Form
}

// New creates an idle workflow. stager and notify may be nil.
func New(store *catalog.Store, stager *export.Stager, notify Notifier) *Workflow {
	if stager == nil {
		stager = export.NewStager("")
	}
	return &Workflow{
		store:  store,
		stager: stager,
		notify: notify,
		state:  StateIdle,
		form:   emptyForm(),
	}
}

// State returns the current state.
func (w *Workflow) State() State { return w.state }

// EditingID returns the id of the product loaded in the form, if any.
func (w *Workflow) EditingID() string { return w.editingID }

// Form returns the current form values.
func (w *Workflow) Form() Form { return w.form }

// Stager returns the image stager backing the form's images field.
func (w *Workflow) Stager() *export.Stager { return w.stager }

// OnCreate clears the form for a new product.
func (w *Workflow) OnCreate() Form {
	w.state = StateEditingNew
	w.editingID = ""
	w.form = emptyForm()
	return w.form
}

// OnOpen loads the product with id into the form.
func (w *Workflow) OnOpen(id string) (Form, error) {
	p, ok := w.store.Find(id)
	if !ok {
		return Form{}, fmt.Errorf("editor: open %s: %w", id, apperr.ErrNotFound)
	}
	w.state = StateEditingExisting
	w.editingID = p.ID
	w.form = FormFrom(p)
	return w.form, nil
}

// OnSave normalizes the submitted form and upserts the result. A blank id
// reuses the id of the product being edited, so an edit never forks into a
// new entry; with nothing being edited a fresh id is generated.
func (w *Workflow) OnSave(f Form) models.Product {
	rec := f.Record()
	if rec["id"] == "" {
		if w.editingID != "" {
			rec["id"] = w.editingID
		} else {
			rec["id"] = normalize.NewID()
		}
	}
	p := normalize.Normalize(rec)

	_, existed := w.store.Find(p.ID)
	w.store.Upsert(p)

	w.state = StateEditingExisting
	w.editingID = p.ID
	w.form = FormFrom(p)

	kind := EventCreated
	if existed {
		kind = EventUpdated
	}
	w.emit(Event{Kind: kind, ID: p.ID})
	return p
}

// DeletePrompt returns the confirmation question for deleting id.
func (w *Workflow) DeletePrompt(id string) string {
	name := id
	if p, ok := w.store.Find(id); ok {
		name = p.DisplayName()
	}
	return fmt.Sprintf("Delete %q?", name)
}

// OnDelete asks c to confirm, then removes the product. It reports whether
// a product was removed; a declined confirmation is a no-op.
func (w *Workflow) OnDelete(id string, c Confirmer) bool {
	if c == nil || !c.Confirm(w.DeletePrompt(id)) {
		return false
	}
	removed := w.store.Remove(id)
	if id == w.editingID {
		w.toIdle()
	}
	if removed {
		w.emit(Event{Kind: EventDeleted, ID: id})
	}
	return removed
}

// OnImport replaces the catalog with the records in data. On a parse error
// the store is left untouched.
func (w *Workflow) OnImport(data []byte) (int, error) {
	recs, err := parser.ParseCatalog(data)
	if err != nil {
		return 0, err
	}
	w.store.Load(recs)
	w.Refresh()
	w.emit(Event{Kind: EventImported})
	return w.store.Len(), nil
}

// OnStage stages an image and syncs the form's images with the staged paths.
func (w *Workflow) OnStage(f export.File) (string, bool) {
	p, added := w.stager.Stage(f)
	w.syncImages()
	if added {
		w.emit(Event{Kind: EventStaged})
	}
	return p, added
}

// OnUnstage removes a staged image by position and syncs the form.
func (w *Workflow) OnUnstage(i int) error {
	if err := w.stager.Unstage(i); err != nil {
		return err
	}
	w.syncImages()
	w.emit(Event{Kind: EventStaged})
	return nil
}

// Refresh drops the form back to idle when the product being edited is no
// longer in the store, e.g. after the catalog was replaced.
func (w *Workflow) Refresh() {
	if w.editingID == "" {
		return
	}
	if _, ok := w.store.Find(w.editingID); !ok {
		w.toIdle()
	}
}

func (w *Workflow) syncImages() {
	w.form.Images = strings.Join(w.stager.Paths(), "\n")
}

func (w *Workflow) toIdle() {
	w.state = StateIdle
	w.editingID = ""
	w.form = emptyForm()
}

func (w *Workflow) emit(e Event) {
	if w.notify != nil {
		w.notify(e)
	}
}
