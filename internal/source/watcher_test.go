package source

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/pasarela/internal/testutil"
)

func TestWatch_ReloadsOnJSONChange(t *testing.T) {
	dir, _ := testutil.Catalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	go Watch(ctx, dir, 50*time.Millisecond, testutil.Logger(), func(context.Context) {
		reloads.Add(1)
	})
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, "products.json", `[{"id":"x"}]`)

	testutil.Eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return reloads.Load() >= 1
	}, "catalog change did not trigger a reload")
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir, _ := testutil.Catalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	go Watch(ctx, dir, 50*time.Millisecond, testutil.Logger(), func(context.Context) {
		reloads.Add(1)
	})
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, "notes.txt", "hello")
	time.Sleep(300 * time.Millisecond)
	if n := reloads.Load(); n != 0 {
		t.Errorf("reloads = %d, want 0", n)
	}
}

func TestWatch_NewDirWatched(t *testing.T) {
	dir, _ := testutil.Catalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	go Watch(ctx, dir, 50*time.Millisecond, testutil.Logger(), func(context.Context) {
		reloads.Add(1)
	})
	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, filepath.Join("season", "placeholder.txt"), "")
	time.Sleep(200 * time.Millisecond)
	testutil.WriteFile(t, dir, filepath.Join("season", "products.json"), `[]`)

	testutil.Eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return reloads.Load() >= 1
	}, "change in new subdir did not trigger a reload")
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir, _ := testutil.Catalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, 0, testutil.Logger(), func(context.Context) {}) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}
