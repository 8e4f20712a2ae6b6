package catalog

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/normalize"
)

func ids(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func loaded(t *testing.T, idList ...string) *Store {
	t.Helper()
	raws := make([]models.Record, len(idList))
	for i, id := range idList {
		raws[i] = models.Record{"id": id, "name": "item " + id}
	}
	s := New()
	s.Load(raws)
	return s
}

func TestLoad_PreservesOrderAndNormalizes(t *testing.T) {
	s := New()
	s.Load([]models.Record{
		{"id": "b", "status": "loom"},
		{"id": "a", "category": "accessories"},
	})
	list := s.List()
	if diff := cmp.Diff([]string{"b", "a"}, ids(list)); diff != "" {
		t.Fatalf("order mismatch:\n%s", diff)
	}
	if list[0].Status != models.StatusMadeToOrder {
		t.Errorf("status = %q", list[0].Status)
	}
	if list[1].Category != models.CategoryAccessory {
		t.Errorf("category = %q", list[1].Category)
	}
}

func TestLoad_ReplacesContents(t *testing.T) {
	s := loaded(t, "a", "b")
	s.Load([]models.Record{{"id": "c"}})
	if diff := cmp.Diff([]string{"c"}, ids(s.List())); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestLoad_DuplicateIDsReassigned(t *testing.T) {
	s := loaded(t, "a", "a", "b")
	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].ID != "a" || list[2].ID != "b" {
		t.Errorf("ids = %v", ids(list))
	}
	if list[1].ID == "a" || list[1].ID == "" {
		t.Errorf("duplicate id not reassigned: %q", list[1].ID)
	}
	if list[1].Name != "item a" {
		t.Errorf("duplicate lost its data: %+v", list[1])
	}
}

func TestUpsert_CreatePrepends(t *testing.T) {
	s := loaded(t, "a", "b")
	s.Upsert(normalize.Normalize(models.Record{"id": "new"}))
	if diff := cmp.Diff([]string{"new", "a", "b"}, ids(s.List())); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestUpsert_EditKeepsPosition(t *testing.T) {
	s := loaded(t, "a", "b", "c")
	p := normalize.Normalize(models.Record{"id": "b", "name": "first"})
	s.Upsert(p)
	p2 := normalize.Normalize(models.Record{"id": "b", "name": "second"})
	s.Upsert(p2)

	list := s.List()
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(list)); diff != "" {
		t.Fatalf("order mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(p2, list[1]); diff != "" {
		t.Errorf("stored product mismatch (-want +got):\n%s", diff)
	}
	count := 0
	for _, x := range list {
		if x.ID == "b" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("id b appears %d times", count)
	}
}

func TestUpsert_BlankIDGetsOne(t *testing.T) {
	s := New()
	s.Upsert(models.Product{Name: "x"})
	list := s.List()
	if len(list) != 1 || list[0].ID == "" {
		t.Errorf("list = %+v", list)
	}
}

func TestRemove(t *testing.T) {
	s := loaded(t, "a", "b", "c")
	if !s.Remove("b") {
		t.Error("Remove(b) = false")
	}
	if s.Remove("zzz") {
		t.Error("Remove of missing id should report false")
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids(s.List())); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	s := loaded(t, "a")
	if p, ok := s.Find("a"); !ok || p.Name != "item a" {
		t.Errorf("Find(a) = %+v, %v", p, ok)
	}
	if _, ok := s.Find("b"); ok {
		t.Error("Find(b) should miss")
	}
}

func TestList_SnapshotIsolated(t *testing.T) {
	s := New()
	s.Load([]models.Record{{"id": "a", "images": []any{"x.jpg"}}})
	snap := s.List()
	snap[0].Images[0] = "mutated.jpg"
	snap[0].Name = "mutated"

	again, _ := s.Find("a")
	if again.Images[0] != "x.jpg" || again.Name == "mutated" {
		t.Errorf("store mutated through snapshot: %+v", again)
	}
}

func TestConcurrentUpsertAndList(t *testing.T) {
	s := loaded(t, "a", "b")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Upsert(normalize.Normalize(models.Record{}))
		}()
		go func() {
			defer wg.Done()
			for _, p := range s.List() {
				if p.ID == "" {
					t.Error("observed product without id")
				}
			}
		}()
	}
	wg.Wait()
	if s.Len() != 52 {
		t.Errorf("Len = %d, want 52", s.Len())
	}
}
