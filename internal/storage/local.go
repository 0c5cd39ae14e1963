package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalStorage serves media from a directory on disk.
type LocalStorage struct {
	dir string
}

// NewLocalStorage returns a LocalStorage rooted at dir.
func NewLocalStorage(dir string) *LocalStorage {
	if dir == "" {
		dir = DefaultStaticDir
	}
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Mode() Mode { return ModeLocal }

// Ping checks that the static directory exists.
func (s *LocalStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat static dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static dir %q is not a directory", s.dir)
	}
	return nil
}

func (s *LocalStorage) Close() error { return nil }
