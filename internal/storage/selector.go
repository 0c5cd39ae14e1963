package storage

import "github.com/amtop/blog/internal/credentials"

// DefaultStaticDir is the media collection's directory when none is configured.
const DefaultStaticDir = "media"

// MediaCollection is the slug of the collection whose uploads are stored.
const MediaCollection = "media"

// ClientOptions are the Google Cloud Storage client options.
// Credentials wins over KeyFilename when both could be set.
type ClientOptions struct {
	ProjectID   string
	KeyFilename string
	Credentials *credentials.ServiceAccount
}

// PluginConfig is the storage configuration handed to the upload subsystem
// and to the media handlers. It is fixed for the lifetime of the process.
type PluginConfig struct {
	Enabled     bool
	Mode        Mode
	Collections []string
	Bucket      string
	ACL         string
	StaticDir   string
	Options     ClientOptions
}

// Select builds the PluginConfig from the environment. Remote storage is
// enabled only when credentials.IsStorageConfigured reports true; otherwise
// uploads stay on local disk under staticDir.
func Select(env credentials.Env, staticDir string) PluginConfig {
	if staticDir == "" {
		staticDir = DefaultStaticDir
	}

	cfg := PluginConfig{
		Enabled:     credentials.IsStorageConfigured(env),
		Mode:        ModeLocal,
		Collections: []string{MediaCollection},
		Bucket:      env.Get(credentials.KeyBucket),
		ACL:         "Public",
		StaticDir:   staticDir,
		Options: ClientOptions{
			ProjectID: env.Get(credentials.KeyProjectID),
		},
	}
	if !cfg.Enabled {
		return cfg
	}

	cfg.Mode = ModeGCS
	set := credentials.Resolve(env)
	if set.ServiceAccount != nil {
		cfg.Options.Credentials = set.ServiceAccount
	} else {
		cfg.Options.KeyFilename = set.KeyFile
	}
	return cfg
}
