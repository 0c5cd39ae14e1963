// Package media resolves and delivers uploaded media assets.
//
// Assets are stored either on local disk under the media collection's static
// directory or remotely (object storage or any absolute URL). Pages get display
// URLs from a Resolver; browsers then fetch bytes through Handler.Serve, which
// redirects, streams or degrades to 404 depending on what actually exists.
package media

import (
	"encoding/json"
	"strings"
	"time"
)

// Asset is the stored metadata for one uploaded file. It is read-only here.
type Asset struct {
	ID        string    `json:"id"`
	Filename  *string   `json:"filename,omitempty"`
	URL       *string   `json:"url,omitempty"`
	Alt       *string   `json:"alt,omitempty"`
	MimeType  *string   `json:"mimeType,omitempty"`
	Filesize  *int64    `json:"filesize,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Asset) filename() string {
	if a == nil || a.Filename == nil {
		return ""
	}
	return *a.Filename
}

func (a *Asset) url() string {
	if a == nil || a.URL == nil {
		return ""
	}
	return *a.URL
}

// Ref is a post's reference to an Asset: either a bare id, or an id with the
// asset document populated.
type Ref struct {
	ID  string
	Doc *Asset
}

// RefID returns a bare id reference, or nil for an empty id.
func RefID(id string) *Ref {
	if id == "" {
		return nil
	}
	return &Ref{ID: id}
}

// RefDoc returns a populated reference, or nil for a nil asset.
func RefDoc(a *Asset) *Ref {
	if a == nil {
		return nil
	}
	return &Ref{ID: a.ID, Doc: a}
}

// RecordID is the id of the referenced asset.
func (r *Ref) RecordID() string {
	if r == nil {
		return ""
	}
	if r.Doc != nil && r.Doc.ID != "" {
		return r.Doc.ID
	}
	return r.ID
}

// Populated reports whether the asset document is loaded.
func (r *Ref) Populated() bool {
	return r != nil && r.Doc != nil
}

func (r *Ref) present() bool {
	return r != nil && (r.ID != "" || r.Doc != nil)
}

// sameRecord reports whether r and o point at the same asset.
func (r *Ref) sameRecord(o *Ref) bool {
	if r == o {
		return true
	}
	if id := r.RecordID(); id != "" {
		return id == o.RecordID()
	}
	return r.Doc != nil && r.Doc == o.Doc
}

// MarshalJSON writes a bare reference as its id and a populated one as the document.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	return json.Marshal(r.ID)
}

// IsAbsoluteURL reports whether u is an http or https URL.
func IsAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// JoinURL resolves u against base. Absolute URLs are returned unchanged.
func JoinURL(base, u string) string {
	if IsAbsoluteURL(u) {
		return u
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(u, "/") {
		return base + u
	}
	return base + "/" + u
}
