package contract

import (
	"slices"

	"github.com/erraggy/oasrouter/internal/httputil"
)

// Document is the subset of an OpenAPI document the router reads.
// Paths and the operations inside each path item keep the order in which
// they appear in the source document.
type Document struct {
	OpenAPI string `yaml:"openapi,omitempty" json:"openapi,omitempty"`
	Swagger string `yaml:"swagger,omitempty" json:"swagger,omitempty"` // OAS 2.0
	Info    Info   `yaml:"info" json:"info"`
	Paths   Paths  `yaml:"paths" json:"paths"`

	// Security is the document-level default security requirement.
	Security []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`
}

// Info carries the identifying metadata of the API.
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version" json:"version"`
}

// Paths is the ordered list of path templates in a document.
type Paths []*PathEntry

// PathEntry pairs a path template (e.g., "/pets/{petId}") with its path item.
type PathEntry struct {
	Template string    `json:"template"`
	Item     *PathItem `json:"item"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`

	// Parameters are shared by every operation of the path item.
	Parameters []*Parameter `json:"parameters,omitempty"`

	// Operations in declaration order.
	Operations []MethodOperation `json:"operations,omitempty"`
}

// MethodOperation is one method entry of a path item.
type MethodOperation struct {
	// Method is lowercase (e.g., "get").
	Method    string     `json:"method"`
	Operation *Operation `json:"operation"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string       `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Deprecated  bool         `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// Security overrides the document default when declared, even when empty.
	Security []SecurityRequirement `yaml:"security,omitempty" json:"security,omitempty"`

	securityDeclared bool
}

// SecurityRequirement maps security scheme names to required scopes.
type SecurityRequirement map[string][]string

// HasSecurity reports whether the operation declares its own security
// requirement. An explicit empty list counts as declared.
func (o *Operation) HasSecurity() bool {
	return o.securityDeclared || o.Security != nil
}

// SetSecurity declares the operation's security requirements. Calling it with
// no arguments declares an explicit empty requirement, which disables the
// document default for this operation.
func (o *Operation) SetSecurity(reqs ...SecurityRequirement) {
	o.Security = append([]SecurityRequirement{}, reqs...)
	o.securityDeclared = true
}

// PathItem returns the path item registered for template, or nil.
func (d *Document) PathItem(template string) *PathItem {
	for _, entry := range d.Paths {
		if entry != nil && entry.Template == template {
			return entry.Item
		}
	}
	return nil
}

// AddPath registers item under template. An existing entry with the same
// template is replaced in place so document order is kept.
func (d *Document) AddPath(template string, item *PathItem) *PathItem {
	if item == nil {
		item = &PathItem{}
	}
	for _, entry := range d.Paths {
		if entry != nil && entry.Template == template {
			entry.Item = item
			return item
		}
	}
	d.Paths = append(d.Paths, &PathEntry{Template: template, Item: item})
	return item
}

// Operation returns the operation declared for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	method = httputil.NormalizeMethod(method)
	for _, mo := range p.Operations {
		if mo.Method == method {
			return mo.Operation
		}
	}
	return nil
}

// SetOperation declares op for method, replacing any existing declaration.
func (p *PathItem) SetOperation(method string, op *Operation) {
	method = httputil.NormalizeMethod(method)
	for i, mo := range p.Operations {
		if mo.Method == method {
			p.Operations[i].Operation = op
			return
		}
	}
	p.Operations = append(p.Operations, MethodOperation{Method: method, Operation: op})
}

// Methods returns the declared methods in declaration order.
func (p *PathItem) Methods() []string {
	methods := make([]string, 0, len(p.Operations))
	for _, mo := range p.Operations {
		methods = append(methods, mo.Method)
	}
	return slices.Clip(methods)
}

// OperationCount returns the number of operations across all paths.
func (d *Document) OperationCount() int {
	n := 0
	for _, entry := range d.Paths {
		if entry == nil || entry.Item == nil {
			continue
		}
		for _, mo := range entry.Item.Operations {
			if mo.Operation != nil {
				n++
			}
		}
	}
	return n
}
