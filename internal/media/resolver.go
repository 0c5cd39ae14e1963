package media

import (
	"net/url"
	"strings"
)

// ServePath is the route prefix of the serve-by-id endpoint.
const ServePath = "/api/media/serve/"

// DisplayURLs are the image sources handed to a page. Fallback is set only
// when it differs from Primary.
type DisplayURLs struct {
	Primary  string `json:"primary,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// Resolver turns asset references into display URLs.
type Resolver struct {
	siteURL string
}

// NewResolver creates a Resolver that builds URLs under siteURL.
func NewResolver(siteURL string) *Resolver {
	return &Resolver{siteURL: strings.TrimRight(siteURL, "/")}
}

// ServeURL is the serve-by-id URL for an asset id.
func (r *Resolver) ServeURL(id string) string {
	return r.siteURL + ServePath + url.PathEscape(id)
}

// URL resolves one reference: an absolute asset url verbatim, else the
// serve-by-id URL, else the relative url under the site. Returns "" when
// nothing resolves.
func (r *Resolver) URL(ref *Ref) string {
	if !ref.present() {
		return ""
	}
	raw := ref.Doc.url()
	if IsAbsoluteURL(raw) {
		return raw
	}
	if id := ref.RecordID(); id != "" {
		return r.ServeURL(id)
	}
	if raw != "" {
		return JoinURL(r.siteURL, raw)
	}
	return ""
}

// DisplayURLs resolves candidate slots given in precedence order. The first
// present slot is primary; the next present slot holding a different record
// is the fallback, dropped if it resolves to the primary URL.
func (r *Resolver) DisplayURLs(slots ...*Ref) DisplayURLs {
	var (
		out     DisplayURLs
		primary *Ref
	)
	for _, s := range slots {
		if !s.present() {
			continue
		}
		if primary == nil {
			primary = s
			out.Primary = r.URL(s)
			continue
		}
		if s.sameRecord(primary) {
			continue
		}
		if u := r.URL(s); u != out.Primary {
			out.Fallback = u
		}
		break
	}
	return out
}

// Alt returns the first present slot's alt text when that asset is populated
// and has one, otherwise title. An empty alt counts as none, so the result
// is never empty for a titled post.
func Alt(title string, slots ...*Ref) string {
	for _, s := range slots {
		if !s.present() {
			continue
		}
		if s.Populated() && s.Doc.Alt != nil && *s.Doc.Alt != "" {
			return *s.Doc.Alt
		}
		break
	}
	return title
}
