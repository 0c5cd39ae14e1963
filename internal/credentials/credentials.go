// Package credentials resolves Google Cloud Storage client credentials from
// the process environment.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Recognised environment keys.
const (
	KeyBase64    = "GCP_KEYFILE_BASE64"
	KeyJSON      = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	KeyFile      = "GOOGLE_CLOUD_KEY_FILE"
	KeyBucket    = "GOOGLE_CLOUD_BUCKET"
	KeyProjectID = "GOOGLE_CLOUD_PROJECT_ID"
)

// Env is an injected view of the process environment.
type Env map[string]string

// FromEnviron builds an Env from os.Environ-style "KEY=value" pairs.
func FromEnviron(pairs []string) Env {
	env := make(Env, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Get returns the value for key, or "" when unset.
func (e Env) Get(key string) string {
	return e[key]
}

// ServiceAccount is a parsed service-account key.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id,omitempty"`

	// Raw is the full JSON document, passed unchanged to the storage client.
	Raw json.RawMessage `json:"-"`
}

// Set is the credential material produced by the first valid source.
// Exactly one of ServiceAccount and KeyFile is set.
type Set struct {
	Source         string
	ServiceAccount *ServiceAccount
	KeyFile        string
}

type source struct {
	key      string
	decode   func(string) ([]byte, error)
	validate func([]byte) (*Set, bool)
}

// sources is evaluated in order; the first one that decodes and validates wins.
var sources = []source{
	{key: KeyBase64, decode: decodeBase64, validate: validateServiceAccount},
	{key: KeyJSON, decode: passthrough, validate: validateServiceAccount},
	{key: KeyFile, decode: passthrough, validate: validateKeyFile},
}

// Resolve returns credentials from the highest-priority valid source, or nil
// when none is usable. Malformed values are treated as absent.
func Resolve(env Env) *Set {
	for _, src := range sources {
		v := env.Get(src.key)
		if v == "" {
			continue
		}
		b, err := src.decode(v)
		if err != nil {
			continue
		}
		set, ok := src.validate(b)
		if !ok {
			continue
		}
		set.Source = src.key
		return set
	}
	return nil
}

// IsStorageConfigured reports whether bucket, project and some credential
// source are all present.
func IsStorageConfigured(env Env) bool {
	if env.Get(KeyBucket) == "" || env.Get(KeyProjectID) == "" {
		return false
	}
	return Resolve(env) != nil
}

func passthrough(v string) ([]byte, error) {
	return []byte(v), nil
}

func decodeBase64(v string) ([]byte, error) {
	v = strings.Join(strings.Fields(v), "")
	if b, err := base64.StdEncoding.DecodeString(v); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(v, "="))
}

func validateServiceAccount(b []byte) (*Set, bool) {
	var sa ServiceAccount
	if err := json.Unmarshal(b, &sa); err != nil {
		return nil, false
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, false
	}
	sa.Raw = append(json.RawMessage(nil), b...)
	return &Set{ServiceAccount: &sa}, true
}

func validateKeyFile(b []byte) (*Set, bool) {
	path := strings.TrimSpace(string(b))
	if path == "" {
		return nil, false
	}
	return &Set{KeyFile: path}, true
}
