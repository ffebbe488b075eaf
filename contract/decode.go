package contract

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasrouter/internal/httputil"
	"github.com/erraggy/oasrouter/oaserrors"
)

// Parse decodes a JSON or YAML contract document. source identifies the
// document in error messages (a file path, "-" for stdin, or "inline").
//
// Only the fields the router reads are decoded. Local parameter references
// ("#/components/parameters/..." and "#/parameters/...") are resolved; other
// $ref values are kept as-is. No schema is validated and unknown keys are
// ignored.
func Parse(source string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "decoding document", Cause: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	body := resolveAlias(root.Content[0])
	if body.Kind != yaml.MappingNode {
		return nil, nodeError(source, body, "document root must be a mapping")
	}

	d := &decoder{source: source, refs: indexParameters(body)}
	doc := &Document{}
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], resolveAlias(body.Content[i+1])
		var err error
		switch key.Value {
		case "openapi":
			doc.OpenAPI = value.Value
		case "swagger":
			doc.Swagger = value.Value
		case "info":
			err = decodeInto(source, value, &doc.Info)
		case "security":
			err = decodeInto(source, value, &doc.Security)
		case "paths":
			doc.Paths, err = d.decodePaths(value)
		}
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

type decoder struct {
	source string

	// refs maps local parameter references to their definitions.
	refs map[string]*yaml.Node
}

// decodePaths walks the paths mapping in document order.
func (d *decoder) decodePaths(node *yaml.Node) (Paths, error) {
	source := d.source
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(source, node, "paths must be a mapping")
	}

	paths := make(Paths, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		item, err := d.decodePathItem(value)
		if err != nil {
			return nil, err
		}
		paths = append(paths, &PathEntry{Template: key.Value, Item: item})
	}
	return paths, nil
}

// decodePathItem keeps method keys in declaration order and ignores
// everything the router does not read ($ref, servers, extensions).
func (d *decoder) decodePathItem(node *yaml.Node) (*PathItem, error) {
	source := d.source
	item := &PathItem{}
	if isNull(node) {
		return item, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(source, node, "path item must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, resolveAlias(node.Content[i+1])
		switch {
		case key == "summary":
			item.Summary = value.Value
		case key == "description":
			item.Description = value.Value
		case key == "parameters":
			params, err := d.decodeParameters(value)
			if err != nil {
				return nil, err
			}
			item.Parameters = params
		case httputil.IsMethod(key):
			op, err := d.decodeOperation(value)
			if err != nil {
				return nil, err
			}
			item.Operations = append(item.Operations, MethodOperation{Method: key, Operation: op})
		}
	}
	return item, nil
}

func (d *decoder) decodeOperation(node *yaml.Node) (*Operation, error) {
	source := d.source
	op := &Operation{}
	if isNull(node) {
		return op, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(source, node, "operation must be a mapping")
	}
	if err := decodeInto(source, node, op); err != nil {
		return nil, err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "security":
			// An explicit "security: []" must still override the document default.
			op.securityDeclared = true
			if op.Security == nil {
				op.Security = []SecurityRequirement{}
			}
		case "parameters":
			params, err := d.decodeParameters(resolveAlias(node.Content[i+1]))
			if err != nil {
				return nil, err
			}
			op.Parameters = params
		}
	}
	return op, nil
}

func decodeInto(source string, node *yaml.Node, out any) error {
	if isNull(node) {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return &oaserrors.ParseError{Path: source, Line: node.Line, Column: node.Column, Cause: err}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func nodeError(source string, node *yaml.Node, msg string) error {
	return &oaserrors.ParseError{
		Path:    source,
		Line:    node.Line,
		Column:  node.Column,
		Message: fmt.Sprintf("%s (got %s)", msg, kindName(node.Kind)),
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
