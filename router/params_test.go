package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/querystring"
)

func mustGetOperation(t *testing.T, r *Router, id string) *Operation {
	t.Helper()
	op, ok := r.GetOperation(id)
	require.True(t, ok, id)
	return op
}

// =============================================================================
// ParseRequest Tests
// =============================================================================

func TestParseRequest_Defaults(t *testing.T) {
	r := newTestRouter(t)
	parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets"}, nil)

	assert.Equal(t, "get", parsed.Method)
	assert.Equal(t, "/pets", parsed.Path)
	assert.NotNil(t, parsed.Params)
	assert.Empty(t, parsed.Params)
	assert.NotNil(t, parsed.Cookies)
	assert.Empty(t, parsed.Cookies)
	assert.NotNil(t, parsed.Query)
	assert.Empty(t, parsed.Query)
	assert.Zero(t, parsed.Headers.Len())
	assert.True(t, parsed.RequestBody.IsEmpty())
	assert.False(t, parsed.QueryConflict)
}

func TestParseRequest_PathParams(t *testing.T) {
	t.Run("template capture", func(t *testing.T) {
		r := newTestRouter(t)
		op := mustGetOperation(t, r, "getWidget")
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/widgets/42"}, op)
		assert.Equal(t, map[string]string{"id": "42"}, parsed.Params)
	})

	t.Run("normalized and root-stripped", func(t *testing.T) {
		r := newTestRouter(t, WithAPIRoot("/api"))
		op := mustGetOperation(t, r, "listPetPhotos")
		parsed := r.ParseRequest(Request{Method: "GET", Path: "//api/pets/7/photos/?size=small"}, op)
		assert.Equal(t, map[string]string{"id": "7"}, parsed.Params)
		assert.Equal(t, "/api/pets/7/photos", parsed.Path)
	})

	t.Run("several placeholders", func(t *testing.T) {
		r := newTestRouter(t)
		op := mustGetOperation(t, r, "putAnything")
		parsed := r.ParseRequest(Request{Method: "PUT", Path: "/toys/ball"}, op)
		assert.Equal(t, map[string]string{"category": "toys", "id": "ball"}, parsed.Params)
	})

	t.Run("path outside the template", func(t *testing.T) {
		r := newTestRouter(t)
		op := mustGetOperation(t, r, "getWidget")
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/gadgets/42"}, op)
		assert.NotNil(t, parsed.Params)
		assert.Empty(t, parsed.Params)
	})

	t.Run("no operation", func(t *testing.T) {
		r := newTestRouter(t)
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/widgets/42"}, nil)
		assert.Empty(t, parsed.Params)
	})

	t.Run("hand-built operation", func(t *testing.T) {
		r := newTestRouter(t)
		op := &Operation{Path: "/orders/{orderId}", Method: "get"}
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/orders/9"}, op)
		assert.Equal(t, map[string]string{"orderId": "9"}, parsed.Params)
	})
}

func TestParseRequest_Headers(t *testing.T) {
	r := newTestRouter(t)
	parsed := r.ParseRequest(Request{
		Method: "GET",
		Path:   "/pets",
		Headers: map[string][]string{
			"Content-Type": {"application/json"},
			"X-Trace":      {"upper"},
			"x-trace":      {"lower"},
		},
	}, nil)

	assert.Equal(t, []string{"content-type", "x-trace"}, parsed.Headers.Keys())
	assert.Equal(t, "lower", parsed.Headers.Get("X-Trace"))
}

func TestParseRequest_Cookies(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		headers  map[string][]string
		expected map[string]string
	}{
		{
			name:     "single header",
			headers:  map[string][]string{"Cookie": {"session=abc; theme=dark"}},
			expected: map[string]string{"session": "abc", "theme": "dark"},
		},
		{
			name:     "multiple header values are joined",
			headers:  map[string][]string{"cookie": {"a=1", "b=2"}},
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name:     "first occurrence wins",
			headers:  map[string][]string{"Cookie": {"a=1; a=2"}},
			expected: map[string]string{"a": "1"},
		},
		{
			name:     "percent-encoded value",
			headers:  map[string][]string{"Cookie": {"name=hello%20world"}},
			expected: map[string]string{"name": "hello world"},
		},
		{
			name:     "invalid escape is kept",
			headers:  map[string][]string{"Cookie": {"pct=100%"}},
			expected: map[string]string{"pct": "100%"},
		},
		{
			name:     "quoted value",
			headers:  map[string][]string{"Cookie": {`q="quoted"`}},
			expected: map[string]string{"q": "quoted"},
		},
		{
			name:     "garbage",
			headers:  map[string][]string{"Cookie": {";;;"}},
			expected: map[string]string{},
		},
		{
			name:     "no cookie header",
			headers:  map[string][]string{"Accept": {"*/*"}},
			expected: map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets", Headers: tt.headers}, nil)
			assert.Equal(t, tt.expected, parsed.Cookies)
		})
	}
}

func TestParseRequest_Query(t *testing.T) {
	r := newTestRouter(t)

	t.Run("from the path", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?limit=10&sort[by]=name"}, nil)
		assert.Equal(t, querystring.String("10"), parsed.Query.Get("limit"))
		assert.Equal(t, querystring.Object(map[string]querystring.Value{"by": querystring.String("name")}), parsed.Query.Get("sort"))
		assert.Equal(t, "limit=10&sort[by]=name", parsed.RawQuery)
	})

	t.Run("from raw query", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets", RawQuery: "?a=1&a=2"}, nil)
		assert.Equal(t, querystring.Array("1", "2"), parsed.Query.Get("a"))
	})

	t.Run("structured query is used verbatim", func(t *testing.T) {
		query := querystring.Values{"tags": querystring.String("1|2")}
		op := mustGetOperation(t, r, "listPets")
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets", Query: query}, op)

		assert.Equal(t, query, parsed.Query)
		assert.False(t, parsed.QueryConflict)

		parsed.Query["extra"] = querystring.String("x")
		assert.False(t, query.Has("extra"))
	})

	t.Run("structured query and query string conflict", func(t *testing.T) {
		logger := newRecordingLogger()
		r := newTestRouter(t, WithLogger(logger))
		query := querystring.Values{"a": querystring.String("structured")}

		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?a=string", Query: query}, nil)
		assert.True(t, parsed.QueryConflict)
		assert.Equal(t, querystring.String("structured"), parsed.Query.Get("a"))
		assert.Equal(t, 1, logger.count("warn"))
	})
}

// =============================================================================
// Non-exploded Query Parameter Tests
// =============================================================================

func TestParseRequest_NonExploded(t *testing.T) {
	r := newTestRouter(t)
	op := mustGetOperation(t, r, "listPets")

	tests := []struct {
		name     string
		query    string
		key      string
		expected querystring.Value
	}{
		{"pipeDelimited", "tags=1|2|3", "tags", querystring.Array("1", "2", "3")},
		{"pipeDelimited encoded", "tags=1%7C2%7c3", "tags", querystring.Array("1", "2", "3")},
		{"pipeDelimited single", "tags=1", "tags", querystring.Array("1")},
		{"pipeDelimited repeated", "tags=1|2&tags=3", "tags", querystring.Array("1", "2", "3")},
		{"spaceDelimited encoded", "words=1%202%203", "words", querystring.Array("1", "2", "3")},
		{"spaceDelimited plus", "words=1+2", "words", querystring.Array("1", "2")},
		{"form comma", "fields=a,b", "fields", querystring.Array("a", "b")},
		{"form encoded comma", "fields=a%2Cb", "fields", querystring.Array("a", "b")},
		{"form single", "fields=a", "fields", querystring.Array("a")},
		{"empty value", "fields=", "fields", querystring.Array()},
		{"exploded parameter untouched", "limit=5,6", "limit", querystring.String("5,6")},
		{"undeclared parameter untouched", "other=1|2", "other", querystring.String("1|2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?" + tt.query}, op)
			assert.Equal(t, tt.expected, parsed.Query.Get(tt.key))
		})
	}

	t.Run("all together", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?tags=a|b&words=c%20d&fields=e,f&limit=10"}, op)
		expected := querystring.Values{
			"tags":   querystring.Array("a", "b"),
			"words":  querystring.Array("c", "d"),
			"fields": querystring.Array("e", "f"),
			"limit":  querystring.String("10"),
		}
		assert.Equal(t, expected, parsed.Query)
	})

	t.Run("absent parameter stays absent", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?limit=1"}, op)
		assert.False(t, parsed.Query.Has("tags"))
	})

	t.Run("without an operation values stay strings", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "GET", Path: "/pets?tags=1|2|3"}, nil)
		assert.Equal(t, querystring.String("1|2|3"), parsed.Query.Get("tags"))
	})
}

func TestDecodeNonExploded_SplitPass(t *testing.T) {
	f := false
	params := []*contract.Parameter{
		{Name: "p", In: contract.InQuery, Style: contract.StylePipeDelimited, Explode: &f},
		{Name: "s", In: contract.InQuery, Style: contract.StyleSpaceDelimited, Explode: &f},
		{Name: "c", In: contract.InQuery, Explode: &f},
		{Name: "d", In: contract.InQuery, Style: contract.StyleDeepObject},
	}
	query := querystring.Values{
		"p": querystring.String("1|2"),
		"s": querystring.String("1 2"),
		"c": querystring.String("1,2"),
		"d": querystring.String("1,2"),
	}

	decodeNonExploded(query, "", params)

	assert.Equal(t, querystring.Array("1", "2"), query["p"])
	assert.Equal(t, querystring.Array("1", "2"), query["s"])
	assert.Equal(t, querystring.Array("1", "2"), query["c"])
	assert.Equal(t, querystring.String("1,2"), query["d"])
}

// =============================================================================
// Body Tests
// =============================================================================

func TestParseRequest_Body(t *testing.T) {
	r := newTestRouter(t)
	op := mustGetOperation(t, r, "createPet")

	t.Run("JSON text is decoded", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "POST", Path: "/pets", Body: `{"x":1}`}, op)
		assert.True(t, parsed.RequestBody.Decoded)
		assert.Equal(t, map[string]any{"x": float64(1)}, parsed.RequestBody.Value)
	})

	t.Run("other text is kept", func(t *testing.T) {
		parsed := r.ParseRequest(Request{Method: "POST", Path: "/pets", Body: "not json"}, op)
		assert.False(t, parsed.RequestBody.Decoded)
		assert.Equal(t, "not json", parsed.RequestBody.Value)
	})
}

// =============================================================================
// ParseRequestByID / MatchAndParse Tests
// =============================================================================

func TestParseRequestByID(t *testing.T) {
	r := newTestRouter(t)

	parsed := r.ParseRequestByID(Request{Method: "GET", Path: "/pets/5"}, "getPet")
	assert.Equal(t, map[string]string{"id": "5"}, parsed.Params)

	parsed = r.ParseRequestByID(Request{Method: "GET", Path: "/pets/5"}, "unknown")
	assert.Empty(t, parsed.Params)
}

func TestMatchAndParse(t *testing.T) {
	r := newTestRouter(t)

	t.Run("matched", func(t *testing.T) {
		op, parsed, err := r.MatchAndParse(Request{Method: "GET", Path: "/pets?tags=a|b"}, true)
		require.NoError(t, err)
		assert.Equal(t, "listPets", op.OperationID)
		assert.Equal(t, querystring.Array("a", "b"), parsed.Query.Get("tags"))
	})

	t.Run("strict failure", func(t *testing.T) {
		op, parsed, err := r.MatchAndParse(Request{Method: "GET", Path: "/nope/x/y"}, true)
		assert.Error(t, err)
		assert.Nil(t, op)
		assert.Nil(t, parsed)
	})

	t.Run("non-strict miss still parses", func(t *testing.T) {
		op, parsed, err := r.MatchAndParse(Request{Method: "GET", Path: "/nope/x/y?a=1"}, false)
		require.NoError(t, err)
		assert.Nil(t, op)
		require.NotNil(t, parsed)
		assert.Equal(t, querystring.String("1"), parsed.Query.Get("a"))
	})
}

// =============================================================================
// Idempotence Tests
// =============================================================================

func TestParseRequest_Idempotent(t *testing.T) {
	r := newTestRouter(t)
	op := mustGetOperation(t, r, "listPets")
	req := Request{
		Method:  "GET",
		Path:    "/pets/?tags=a|b&limit=2",
		Headers: map[string][]string{"Cookie": {"a=1"}},
	}

	first := r.ParseRequest(req, op)
	second := r.ParseRequest(NormalizeRequest(req), op)

	assert.Equal(t, first.Params, second.Params)
	assert.Equal(t, first.Query, second.Query)
	assert.Equal(t, first.Cookies, second.Cookies)
}

// =============================================================================
// Referenced Parameter Tests
// =============================================================================

const refContract = `openapi: "3.0.3"
info:
  title: Items
  version: "1.0.0"
paths:
  /items:
    parameters:
      - $ref: "#/components/parameters/Ids"
    get:
      operationId: listItems
      parameters:
        - $ref: "#/components/parameters/Ids"
        - $ref: "#/components/parameters/Tags"
        - $ref: "#/components/parameters/Words"
  /items/{itemId}:
    parameters:
      - $ref: "#/components/parameters/ItemId"
    get:
      operationId: getItem
components:
  parameters:
    ItemId:
      name: itemId
      in: path
      required: true
    Ids:
      name: ids
      in: query
      style: pipeDelimited
      explode: false
    Tags:
      name: tags
      in: query
      style: form
      explode: false
    Words:
      name: words
      in: query
      style: spaceDelimited
      explode: false
`

func TestParseRequest_ReferencedParameters(t *testing.T) {
	doc, err := contract.Parse("items.yaml", []byte(refContract))
	require.NoError(t, err)
	r, err := New(doc)
	require.NoError(t, err)

	t.Run("references merge by location and name", func(t *testing.T) {
		op := mustGetOperation(t, r, "listItems")
		names := make([]string, len(op.Parameters))
		for i, p := range op.Parameters {
			names[i] = p.Name
		}
		assert.Equal(t, []string{"ids", "tags", "words"}, names)
	})

	t.Run("non-exploded query values decode to arrays", func(t *testing.T) {
		op, parsed, err := r.MatchAndParse(Request{Method: "GET", Path: "/items?ids=1|2&tags=a,b&words=x%20y"}, true)
		require.NoError(t, err)
		assert.Equal(t, "listItems", op.OperationID)

		expected := querystring.Values{
			"ids":   querystring.Array("1", "2"),
			"tags":  querystring.Array("a", "b"),
			"words": querystring.Array("x", "y"),
		}
		assert.Equal(t, expected, parsed.Query)
	})

	t.Run("path-level reference", func(t *testing.T) {
		op, parsed, err := r.MatchAndParse(Request{Method: "GET", Path: "/items/42"}, true)
		require.NoError(t, err)
		assert.Equal(t, "getItem", op.OperationID)
		require.NotNil(t, op.Parameter(contract.InPath, "itemId"))
		assert.Equal(t, map[string]string{"itemId": "42"}, parsed.Params)
	})
}
