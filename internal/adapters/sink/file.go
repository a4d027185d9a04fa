package sink

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"finedesk/internal/ports"
)

type FileSink struct {
	create func(path string) (io.WriteCloser, error)
}

func NewFileSink() *FileSink {
	return &FileSink{create: func(p string) (io.WriteCloser, error) { return os.Create(p) }}
}

// Save writes r to dir/name, replacing an existing file of the same name.
// A failed write or close removes the partial file.
func (s *FileSink) Save(ctx context.Context, dir, name string, r io.Reader, _ ports.Meta) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("file sink mkdir: %w", err)
	}

	p := filepath.Join(dir, filepath.Base(name))
	f, err := s.create(p)
	if err != nil {
		return "", fmt.Errorf("file sink create: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(p)
		return "", fmt.Errorf("file sink write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("file sink close: %w", err)
	}
	log.Printf("[SINK][FILE][OK] path=%q size=%d", p, n)
	return p, nil
}
