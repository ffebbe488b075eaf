// Package httputil provides HTTP method constants and normalization shared by
// the contract model and the router.
package httputil

import "strings"

// HTTP Method Constants, lowercase as they appear as path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// Methods lists every operation key a path item may declare.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

var methodSet = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
}

// NormalizeMethod trims surrounding whitespace and lower-cases an HTTP method.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// IsMethod reports whether key names an operation in a path item.
// The comparison is case-sensitive: path item keys are lowercase in OAS.
func IsMethod(key string) bool {
	return methodSet[key]
}
