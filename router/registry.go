package router

import (
	"slices"

	"github.com/erraggy/oasrouter/contract"
)

// Operation is a self-contained descriptor of one (path template, method)
// pair of the contract document. Parameters holds the operation's own
// parameters followed by the path item's shared parameters it does not
// override; Security is the effective requirement.
type Operation struct {
	Path        string                         `json:"path" yaml:"path"`
	Method      string                         `json:"method" yaml:"method"`
	OperationID string                         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                         `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string                       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool                           `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Parameters  []*contract.Parameter          `json:"parameters" yaml:"parameters"`
	Security    []contract.SecurityRequirement `json:"security" yaml:"security"`

	// Source is the contract operation the descriptor was derived from.
	Source *contract.Operation `json:"-" yaml:"-"`

	template *pathTemplate
}

// PathParamNames returns the template placeholder names in order.
func (o *Operation) PathParamNames() []string {
	t, err := o.compiled()
	if err != nil {
		return nil
	}
	return slices.Clone(t.paramNames)
}

// Specificity returns the number of literal characters in the path template.
func (o *Operation) Specificity() int {
	t, err := o.compiled()
	if err != nil {
		return 0
	}
	return t.specificity
}

// ParametersIn returns the parameters declared for location (e.g., "query").
func (o *Operation) ParametersIn(in string) []*contract.Parameter {
	var out []*contract.Parameter
	for _, p := range o.Parameters {
		if p.In == in {
			out = append(out, p)
		}
	}
	return out
}

// Parameter returns the parameter with the given location and name, or nil.
func (o *Operation) Parameter(in, name string) *contract.Parameter {
	for _, p := range o.Parameters {
		if p.In == in && p.Name == name {
			return p
		}
	}
	return nil
}

// compiled returns the compiled template, compiling it for descriptors that
// were built by hand rather than by a Router.
func (o *Operation) compiled() (*pathTemplate, error) {
	if o.template != nil && o.template.raw == o.Path {
		return o.template, nil
	}
	return compileTemplate(o.Path)
}

func (o *Operation) clone() *Operation {
	cp := *o
	cp.Tags = slices.Clone(o.Tags)
	cp.Parameters = slices.Clone(o.Parameters)
	cp.Security = cloneSecurity(o.Security)
	return &cp
}

func cloneSecurity(reqs []contract.SecurityRequirement) []contract.SecurityRequirement {
	out := make([]contract.SecurityRequirement, len(reqs))
	for i, req := range reqs {
		cp := make(contract.SecurityRequirement, len(req))
		for name, scopes := range req {
			cp[name] = slices.Clone(scopes)
		}
		out[i] = cp
	}
	return out
}

// buildOperations flattens the document into descriptors in document order.
// A repeated (template, method) pair keeps its first declaration. Paths whose
// template cannot be compiled are skipped with a warning.
func buildOperations(doc *contract.Document, logger Logger) []*Operation {
	var (
		ops  []*Operation
		seen = make(map[string]bool)
	)
	for _, entry := range doc.Paths {
		if entry == nil || entry.Item == nil {
			continue
		}
		tmpl, err := compileTemplate(entry.Template)
		if err != nil {
			logger.Warn("path template skipped", "path", entry.Template, "error", err)
			continue
		}
		for _, mo := range entry.Item.Operations {
			if mo.Operation == nil {
				continue
			}
			key := mo.Method + " " + entry.Template
			if seen[key] {
				logger.Warn("duplicate operation ignored", "method", mo.Method, "path", entry.Template)
				continue
			}
			seen[key] = true

			src := mo.Operation
			ops = append(ops, &Operation{
				Path:        entry.Template,
				Method:      mo.Method,
				OperationID: src.OperationID,
				Summary:     src.Summary,
				Description: src.Description,
				Tags:        src.Tags,
				Deprecated:  src.Deprecated,
				Parameters:  mergeParameters(src.Parameters, entry.Item.Parameters),
				Security:    effectiveSecurity(src, doc),
				Source:      src,
				template:    tmpl,
			})
		}
	}
	return ops
}

// mergeParameters returns the operation's parameters followed by the path
// item parameters not already present. A parameter is identified by its
// location and name; earlier entries win. Unnamed entries (unresolved
// references) are kept as they are.
func mergeParameters(opParams, pathParams []*contract.Parameter) []*contract.Parameter {
	merged := make([]*contract.Parameter, 0, len(opParams)+len(pathParams))
	seen := make(map[[2]string]bool, len(opParams)+len(pathParams))
	for _, list := range [][]*contract.Parameter{opParams, pathParams} {
		for _, p := range list {
			if p == nil {
				continue
			}
			if p.Name != "" {
				key := [2]string{p.In, p.Name}
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			merged = append(merged, p)
		}
	}
	return merged
}

// effectiveSecurity returns the operation's own requirement if declared,
// else the document default, else an empty requirement.
func effectiveSecurity(op *contract.Operation, doc *contract.Document) []contract.SecurityRequirement {
	switch {
	case op.HasSecurity():
		return cloneSecurity(op.Security)
	case doc.Security != nil:
		return cloneSecurity(doc.Security)
	default:
		return []contract.SecurityRequirement{}
	}
}

// ListOperations returns a descriptor for every method of every path in
// document order. The descriptors are fresh copies on every call.
func (r *Router) ListOperations() []*Operation {
	out := make([]*Operation, len(r.operations))
	for i, op := range r.operations {
		out[i] = op.clone()
	}
	return out
}

// GetOperation returns the first descriptor whose operation ID equals id.
func (r *Router) GetOperation(id string) (*Operation, bool) {
	if id == "" {
		return nil, false
	}
	for _, op := range r.operations {
		if op.OperationID == id {
			return op.clone(), true
		}
	}
	return nil, false
}
