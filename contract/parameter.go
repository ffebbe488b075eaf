package contract

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// Serialization styles.
const (
	StyleForm           = "form"
	StyleSimple         = "simple"
	StyleSpaceDelimited = "spaceDelimited"
	StylePipeDelimited  = "pipeDelimited"
	StyleDeepObject     = "deepObject"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref             string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name            string `yaml:"name,omitempty" json:"name,omitempty"`
	In              string `yaml:"in,omitempty" json:"in,omitempty"` // "path", "query", "header", "cookie"
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	Required        bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated      bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	AllowEmptyValue bool   `yaml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty"`
	AllowReserved   bool   `yaml:"allowReserved,omitempty" json:"allowReserved,omitempty"`

	Style   string `yaml:"style,omitempty" json:"style,omitempty"`
	Explode *bool  `yaml:"explode,omitempty" json:"explode,omitempty"`

	// Schema and Content are kept undecoded for schema validation collaborators.
	Schema  map[string]any `yaml:"schema,omitempty" json:"schema,omitempty"`
	Content map[string]any `yaml:"content,omitempty" json:"content,omitempty"`
}

// EffectiveStyle returns Style, or the location default when unset:
// form for query and cookie parameters, simple for path and header.
func (p *Parameter) EffectiveStyle() string {
	if p.Style != "" {
		return p.Style
	}
	switch p.In {
	case InQuery, InCookie:
		return StyleForm
	default:
		return StyleSimple
	}
}

// EffectiveExplode returns Explode, or the default when unset, which is true
// only for the form style.
func (p *Parameter) EffectiveExplode() bool {
	if p.Explode != nil {
		return *p.Explode
	}
	return p.EffectiveStyle() == StyleForm
}
