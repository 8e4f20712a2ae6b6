package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/starford/pasarela/internal/apperr"
)

const bundleReaders = 4

// Bundle writes the staged files into a zip archive on w, one entry per file
// named by the base name of its asset path. Files are read concurrently and
// written in staging order.
func Bundle(ctx context.Context, w io.Writer, staged []Staged) error {
	if len(staged) == 0 {
		return apperr.ErrNothingStaged
	}

	contents := make([][]byte, len(staged))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(bundleReaders)
	for i, st := range staged {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := readFile(st.File)
			if err != nil {
				return fmt.Errorf("export: read %s: %w", st.File.Name, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for i, st := range staged {
		fw, err := zw.Create(path.Base(st.Path))
		if err != nil {
			return fmt.Errorf("export: zip entry %s: %w", st.Path, err)
		}
		if _, err := fw.Write(contents[i]); err != nil {
			return fmt.Errorf("export: zip write %s: %w", st.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: zip close: %w", err)
	}
	return nil
}

func readFile(f File) ([]byte, error) {
	if f.Open == nil {
		return nil, errors.New("file has no content")
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
