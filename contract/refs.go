package contract

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasrouter/oaserrors"
)

// Local reference prefixes for reusable parameters.
const (
	ComponentParameterRef  = "#/components/parameters/" // OAS 3.x
	DefinitionParameterRef = "#/parameters/"            // OAS 2.0
)

// maxRefDepth bounds reference chains (a ref whose target is itself a ref).
const maxRefDepth = 32

// indexParameters collects the reusable parameter definitions of the
// document root, keyed by the local reference that names them.
func indexParameters(body *yaml.Node) map[string]*yaml.Node {
	refs := make(map[string]*yaml.Node)
	add := func(prefix string, defs *yaml.Node) {
		if defs == nil || defs.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(defs.Content); i += 2 {
			refs[prefix+escapeJSONPointer(defs.Content[i].Value)] = resolveAlias(defs.Content[i+1])
		}
	}

	add(DefinitionParameterRef, mappingValue(body, "parameters"))
	add(ComponentParameterRef, mappingValue(mappingValue(body, "components"), "parameters"))
	return refs
}

// decodeParameters decodes a parameter list, replacing local references
// with their definitions. The resolved Parameter keeps the reference it was
// declared with in Ref. References that cannot be resolved locally are kept
// as a Parameter holding only Ref.
func (d *decoder) decodeParameters(node *yaml.Node) ([]*Parameter, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, nodeError(d.source, node, "parameters must be a sequence")
	}

	params := make([]*Parameter, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		target, ref, err := d.resolveParameter(item)
		if err != nil {
			return nil, err
		}

		p := &Parameter{}
		if err := decodeInto(d.source, target, p); err != nil {
			return nil, err
		}
		if ref != "" {
			p.Ref = ref
		}
		params = append(params, p)
	}
	return params, nil
}

// resolveParameter follows local $ref chains starting at node. It returns
// the definition node and the first reference followed, if any.
func (d *decoder) resolveParameter(node *yaml.Node) (*yaml.Node, string, error) {
	first := ""
	seen := make(map[string]bool)
	for depth := 0; ; depth++ {
		refNode := mappingValue(node, "$ref")
		if refNode == nil {
			return node, first, nil
		}
		ref := refNode.Value
		if first == "" {
			first = ref
		}

		target, ok := d.refs[ref]
		if !ok {
			// External or unknown; keep the reference as written.
			return node, first, nil
		}
		if seen[ref] || depth >= maxRefDepth {
			return nil, "", &oaserrors.ParseError{
				Path:    d.source,
				Line:    refNode.Line,
				Column:  refNode.Column,
				Message: fmt.Sprintf("circular parameter reference %q", first),
			}
		}
		seen[ref] = true
		node = target
	}
}

// mappingValue returns the value for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolveAlias(node.Content[i+1])
		}
	}
	return nil
}

// Per RFC 6901, "~" is written as ~0 and "/" as ~1.
func escapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}
