// Package storage decides, once per process, where media files live and
// provides a read-only handle on that backend.
// Local disk is used unless Google Cloud Storage is fully configured.
package storage

import "context"

// Mode names a storage backend.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
)

// Storage is the read-only view of the selected backend.
type Storage interface {
	// Mode reports which backend is active.
	Mode() Mode
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases any client resources.
	Close() error
}

// Open returns the Storage implementation matching cfg.
func Open(ctx context.Context, cfg PluginConfig) (Storage, error) {
	if cfg.Enabled {
		s, err := NewGCSStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return NewLocalStorage(cfg.StaticDir), nil
}
