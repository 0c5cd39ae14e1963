package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amtop/blog/internal/credentials"
)

func TestSelectLocalWhenNotConfigured(t *testing.T) {
	cfg := Select(credentials.Env{credentials.KeyBucket: "bucket"}, "")

	assert.False(t, cfg.Enabled)
	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
	assert.Equal(t, []string{MediaCollection}, cfg.Collections)
	assert.Nil(t, cfg.Options.Credentials)
	assert.Empty(t, cfg.Options.KeyFilename)
}

func TestSelectGCSWithServiceAccount(t *testing.T) {
	env := credentials.Env{
		credentials.KeyBucket:    "blog-media",
		credentials.KeyProjectID: "amtop",
		credentials.KeyJSON:      `{"client_email":"a@b.com","private_key":"k"}`,
		credentials.KeyFile:      "/keys/sa.json",
	}

	cfg := Select(env, "uploads")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, ModeGCS, cfg.Mode)
	assert.Equal(t, "blog-media", cfg.Bucket)
	assert.Equal(t, "Public", cfg.ACL)
	assert.Equal(t, "uploads", cfg.StaticDir)
	assert.Equal(t, "amtop", cfg.Options.ProjectID)
	require.NotNil(t, cfg.Options.Credentials)
	assert.Equal(t, "a@b.com", cfg.Options.Credentials.ClientEmail)
	assert.Empty(t, cfg.Options.KeyFilename)
}

func TestSelectGCSWithKeyFile(t *testing.T) {
	env := credentials.Env{
		credentials.KeyBucket:    "blog-media",
		credentials.KeyProjectID: "amtop",
		credentials.KeyFile:      "/keys/sa.json",
	}

	cfg := Select(env, "")

	assert.True(t, cfg.Enabled)
	assert.Nil(t, cfg.Options.Credentials)
	assert.Equal(t, "/keys/sa.json", cfg.Options.KeyFilename)
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(context.Background(), Select(credentials.Env{}, dir))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, ModeLocal, s.Mode())
	assert.NoError(t, s.Ping(context.Background()))
}

func TestLocalPing(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, NewLocalStorage(filepath.Join(dir, "missing")).Ping(context.Background()))
	assert.Error(t, NewLocalStorage(file).Ping(context.Background()))
}
