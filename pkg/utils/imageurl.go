package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolver maps the catalog's raw image-path field to a full CDN URL.
//
// The field comes in two shapes: a root-relative path ("scans/1/..." or
// "/scans/1/...") served straight under the CDN root, or a bare filename
// that has to be addressed through the per-work scans directory.
type Resolver struct {
	CDNRoot    string
	Generation int
}

// WorkImage resolves a work's cover image. It returns "" when neither a
// usable filename nor a work id is available; callers render a visual
// fallback in that case.
func (r Resolver) WorkImage(raw string, workID int) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		return r.CDNRoot + "/" + strings.TrimLeft(raw, "/")
	}
	if raw == "" || workID == 0 {
		return ""
	}
	gen := r.Generation
	if gen == 0 {
		gen = 1
	}
	return fmt.Sprintf("%s/scans/%d/obras/%s/%s",
		r.CDNRoot, gen, url.PathEscape(fmt.Sprint(workID)), url.PathEscape(raw))
}

// PageImage resolves a chapter page path, which the API always returns
// root-relative.
func (r Resolver) PageImage(path string) string {
	return r.CDNRoot + "/" + strings.TrimLeft(path, "/")
}
