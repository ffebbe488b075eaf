package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_AddPath(t *testing.T) {
	t.Run("appends new templates in order", func(t *testing.T) {
		doc := &Document{}
		doc.AddPath("/b", nil)
		doc.AddPath("/a", nil)

		require.Len(t, doc.Paths, 2)
		assert.Equal(t, "/b", doc.Paths[0].Template)
		assert.Equal(t, "/a", doc.Paths[1].Template)
	})

	t.Run("replaces existing template in place", func(t *testing.T) {
		doc := &Document{}
		doc.AddPath("/a", nil)
		doc.AddPath("/b", nil)
		replacement := &PathItem{Summary: "new"}
		doc.AddPath("/a", replacement)

		require.Len(t, doc.Paths, 2)
		assert.Same(t, replacement, doc.Paths[0].Item)
	})

	t.Run("missing template returns nil", func(t *testing.T) {
		doc := &Document{}
		assert.Nil(t, doc.PathItem("/missing"))
	})
}

func TestPathItem_SetOperation(t *testing.T) {
	item := &PathItem{}
	first := &Operation{OperationID: "first"}
	item.SetOperation("GET", first)
	item.SetOperation("post", &Operation{OperationID: "create"})

	assert.Equal(t, []string{"get", "post"}, item.Methods())
	assert.Same(t, first, item.Operation("get"))

	replaced := &Operation{OperationID: "replaced"}
	item.SetOperation("get", replaced)
	assert.Equal(t, []string{"get", "post"}, item.Methods())
	assert.Same(t, replaced, item.Operation(" Get "))
	assert.Nil(t, item.Operation("delete"))
}

func TestOperation_SetSecurity(t *testing.T) {
	t.Run("no arguments declares empty requirement", func(t *testing.T) {
		op := &Operation{}
		assert.False(t, op.HasSecurity())

		op.SetSecurity()
		assert.True(t, op.HasSecurity())
		assert.NotNil(t, op.Security)
		assert.Empty(t, op.Security)
	})

	t.Run("literal security counts as declared", func(t *testing.T) {
		op := &Operation{Security: []SecurityRequirement{{"oauth": {"read"}}}}
		assert.True(t, op.HasSecurity())
	})
}

func TestParameter_Defaults(t *testing.T) {
	f := false
	tr := true

	tests := []struct {
		name            string
		param           Parameter
		expectedStyle   string
		expectedExplode bool
	}{
		{"query defaults to exploded form", Parameter{In: InQuery}, StyleForm, true},
		{"cookie defaults to exploded form", Parameter{In: InCookie}, StyleForm, true},
		{"path defaults to simple", Parameter{In: InPath}, StyleSimple, false},
		{"header defaults to simple", Parameter{In: InHeader}, StyleSimple, false},
		{"explicit explode false", Parameter{In: InQuery, Explode: &f}, StyleForm, false},
		{"pipeDelimited defaults to not exploded", Parameter{In: InQuery, Style: StylePipeDelimited}, StylePipeDelimited, false},
		{"spaceDelimited explicit explode", Parameter{In: InQuery, Style: StyleSpaceDelimited, Explode: &tr}, StyleSpaceDelimited, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStyle, tt.param.EffectiveStyle())
			assert.Equal(t, tt.expectedExplode, tt.param.EffectiveExplode())
		})
	}
}
