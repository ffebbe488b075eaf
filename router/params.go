package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/querystring"
)

// ParsedRequest is a request decomposed into its parameters.
type ParsedRequest struct {
	// Method and Path are normalized.
	Method   string `json:"method" yaml:"method"`
	Path     string `json:"path" yaml:"path"`
	RawQuery string `json:"rawQuery,omitempty" yaml:"rawQuery,omitempty"`

	Headers Header             `json:"headers" yaml:"headers"`
	Params  map[string]string  `json:"params" yaml:"params"`
	Cookies map[string]string  `json:"cookies" yaml:"cookies"`
	Query   querystring.Values `json:"query" yaml:"query"`

	RequestBody Body `json:"requestBody" yaml:"requestBody"`

	// QueryConflict is set when the request carried both a decoded query
	// and a query string. The decoded query is used.
	QueryConflict bool `json:"queryConflict,omitempty" yaml:"queryConflict,omitempty"`
}

// ParseRequest decomposes req. Path parameters and non-exploded query
// parameters are only decoded when op is given; everything else is decoded
// either way. Parsing never fails: undecodable parts keep their raw form or
// default to empty containers.
func (r *Router) ParseRequest(req Request, op *Operation) *ParsedRequest {
	norm := NormalizeRequest(req)

	parsed := &ParsedRequest{
		Method:      norm.Method,
		Path:        norm.Path,
		RawQuery:    norm.RawQuery,
		Headers:     NewHeader(req.Headers),
		Params:      map[string]string{},
		RequestBody: decodeBody(req.Body),
	}
	parsed.Cookies = parseCookies(parsed.Headers.Values("cookie"))

	structured := req.Query != nil
	if structured {
		parsed.Query = req.Query.Clone()
		if norm.RawQuery != "" {
			parsed.QueryConflict = true
			r.logger.Warn("request has both a decoded query and a query string; using the decoded query",
				"method", norm.Method, "path", norm.Path)
		}
	} else {
		parsed.Query = querystring.Parse(norm.RawQuery)
	}

	if op == nil {
		return parsed
	}

	if tmpl, err := op.compiled(); err == nil {
		if params, ok := tmpl.extract(r.StripRoot(norm.Path)); ok {
			parsed.Params = params
		}
	} else {
		r.logger.Debug("path template not usable", "path", op.Path, "error", err)
	}

	if !structured {
		decodeNonExploded(parsed.Query, norm.RawQuery, op.ParametersIn(contract.InQuery))
	}
	return parsed
}

// ParseRequestByID parses req for the operation with the given ID. An
// unknown ID parses req as if no operation were given.
func (r *Router) ParseRequestByID(req Request, operationID string) *ParsedRequest {
	op, _ := r.GetOperation(operationID)
	return r.ParseRequest(req, op)
}

// MatchAndParse matches req and parses it against the matched operation.
// A request that matches nothing is still parsed; the returned operation is
// then nil. Errors are those of MatchOperation.
func (r *Router) MatchAndParse(req Request, strict bool) (*Operation, *ParsedRequest, error) {
	op, err := r.MatchOperation(req, strict)
	if err != nil {
		return nil, nil, err
	}
	return op, r.ParseRequest(req, op), nil
}

// decodeNonExploded turns non-exploded delimited query parameters into
// arrays. The first pass re-decodes the raw query with the style delimiter
// rewritten to commas; the second splits values that are still strings.
func decodeNonExploded(query querystring.Values, rawQuery string, params []*contract.Parameter) {
	reparsed := make(map[string]querystring.Values)

	for _, p := range params {
		if p.EffectiveExplode() || !isDelimitedStyle(p.EffectiveStyle()) {
			continue
		}
		style := p.EffectiveStyle()

		if rawQuery != "" {
			vs, ok := reparsed[style]
			if !ok {
				vs = querystring.ParseWithOptions(commaQuery(rawQuery, style), querystring.Options{Comma: true})
				reparsed[style] = vs
			}
			if v, ok := vs[p.Name]; ok {
				query[p.Name] = v
			}
		}

		if s, ok := query[p.Name].Str(); ok {
			query[p.Name] = splitDelimited(s, style)
		}
	}
}

func isDelimitedStyle(style string) bool {
	switch style {
	case contract.StyleForm, contract.StyleSpaceDelimited, contract.StylePipeDelimited:
		return true
	default:
		return false
	}
}

// commaQuery rewrites the delimiter of style, literal or percent-encoded,
// into a literal comma.
func commaQuery(rawQuery, style string) string {
	var pairs []string
	switch style {
	case contract.StyleSpaceDelimited:
		pairs = []string{"%2C", ",", "%2c", ",", " ", ",", "+", ",", "%20", ","}
	case contract.StylePipeDelimited:
		pairs = []string{"%2C", ",", "%2c", ",", "|", ",", "%7C", ",", "%7c", ","}
	default:
		pairs = []string{"%2C", ",", "%2c", ","}
	}
	return strings.NewReplacer(pairs...).Replace(rawQuery)
}

// splitDelimited splits a decoded value by the delimiter of style. An empty
// value is an empty array.
func splitDelimited(s, style string) querystring.Value {
	if s == "" {
		return querystring.Array()
	}
	sep := ","
	switch style {
	case contract.StyleSpaceDelimited:
		sep = " "
	case contract.StylePipeDelimited:
		sep = "|"
	}
	return querystring.Array(strings.Split(s, sep)...)
}

// parseCookies decodes cookie header values, joined with "; ", into a flat
// map. The first occurrence of a name wins. Percent-encoded values are
// decoded when valid.
func parseCookies(values []string) map[string]string {
	cookies := map[string]string{}
	if len(values) == 0 {
		return cookies
	}

	req := http.Request{Header: http.Header{"Cookie": {strings.Join(values, "; ")}}}
	for _, c := range req.Cookies() {
		if _, seen := cookies[c.Name]; seen {
			continue
		}
		value := c.Value
		if strings.Contains(value, "%") {
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
		}
		cookies[c.Name] = value
	}
	return cookies
}
