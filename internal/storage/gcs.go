package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorage is a Google Cloud Storage backed Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a client from the credentials chosen by Select.
func NewGCSStorage(ctx context.Context, cfg PluginConfig) (*GCSStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("create gcs client: bucket is not set")
	}

	var opts []option.ClientOption
	switch {
	case cfg.Options.Credentials != nil:
		opts = append(opts, option.WithCredentialsJSON(cfg.Options.Credentials.Raw))
	case cfg.Options.KeyFilename != "":
		opts = append(opts, option.WithCredentialsFile(cfg.Options.KeyFilename))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &GCSStorage{client: client, bucket: cfg.Bucket}, nil
}

func (s *GCSStorage) Mode() Mode { return ModeGCS }

// Ping reads the bucket attributes.
func (s *GCSStorage) Ping(ctx context.Context) error {
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("read bucket %q attrs: %w", s.bucket, err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
