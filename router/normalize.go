package router

import (
	"strings"

	"github.com/erraggy/oasrouter/internal/httputil"
	"github.com/erraggy/oasrouter/querystring"
)

// Request is a transport-independent HTTP request.
type Request struct {
	// Method is the HTTP method in any case.
	Method string `json:"method" yaml:"method"`

	// Path is the request path and may carry a query string.
	Path string `json:"path" yaml:"path"`

	// Headers keeps header names as supplied.
	Headers map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// RawQuery is the query string. When empty, the query string of Path
	// is used. A leading "?" is ignored.
	RawQuery string `json:"rawQuery,omitempty" yaml:"rawQuery,omitempty"`

	// Query is an already-decoded query. When set it is used verbatim and
	// the query string is not decoded.
	Query querystring.Values `json:"query,omitempty" yaml:"query,omitempty"`

	// Body is a string, []byte, json.RawMessage or an already-decoded value.
	Body any `json:"body,omitempty" yaml:"body,omitempty"`
}

// queryString returns the raw query string of the request.
func (req Request) queryString() string {
	if req.RawQuery != "" {
		return strings.TrimPrefix(req.RawQuery, "?")
	}
	_, q, _ := strings.Cut(req.Path, "?")
	return q
}

// NormalizeRequest returns a copy of req with a lowercase trimmed method and
// a normalized path. A query string carried by the path moves to RawQuery
// unless RawQuery is already set. Normalizing twice is a no-op.
func NormalizeRequest(req Request) Request {
	req.RawQuery = req.queryString()
	req.Method = httputil.NormalizeMethod(req.Method)
	req.Path = NormalizePath(req.Path)
	return req
}

// NormalizePath drops the query string and trailing slashes of path and
// enforces exactly one leading slash. Whitespace is part of the path.
//
//	NormalizePath("//pets/1/?x=1") // "/pets/1"
//	NormalizePath("")             // "/"
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	path = strings.TrimRight(path, "/")
	return "/" + strings.TrimLeft(path, "/")
}

// StripRoot removes the API root, and one slash following it, from a
// normalized path. Paths outside the root are returned unchanged. The
// result is only used for comparison against path templates.
func (r *Router) StripRoot(path string) string {
	if r.apiRoot == "/" || !strings.HasPrefix(path, r.apiRoot) {
		return path
	}
	return "/" + strings.TrimPrefix(path[len(r.apiRoot):], "/")
}
