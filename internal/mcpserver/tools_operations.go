package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/router"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listOperationsInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The OpenAPI document to read"`
	APIRoot    string    `json:"api_root,omitempty"   jsonschema:"Root prefix of the API (default from OASROUTER_API_ROOT)"`
	Method     string    `json:"method,omitempty"     jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Tag        string    `json:"tag,omitempty"        jsonschema:"Filter by tag name"`
	Deprecated bool      `json:"deprecated,omitempty" jsonschema:"Only show deprecated operations"`
	Limit      int       `json:"limit,omitempty"      jsonschema:"Maximum number of results to return (default 100)"`
	Offset     int       `json:"offset,omitempty"     jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method         string   `json:"method"`
	Path           string   `json:"path"`
	OperationID    string   `json:"operation_id,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Deprecated     bool     `json:"deprecated,omitempty"`
	ParameterCount int      `json:"parameter_count"`
}

type listOperationsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func summarizeOperation(op *router.Operation) operationSummary {
	return operationSummary{
		Method:         strings.ToUpper(op.Method),
		Path:           op.Path,
		OperationID:    op.OperationID,
		Summary:        op.Summary,
		Tags:           op.Tags,
		Deprecated:     op.Deprecated,
		ParameterCount: len(op.Parameters),
	}
}

func handleListOperations(_ context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, any, error) {
	r, err := input.Spec.resolve(input.APIRoot)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := r.ListOperations()
	var matched []*router.Operation
	for _, op := range all {
		if input.Method != "" && !strings.EqualFold(op.Method, input.Method) {
			continue
		}
		if input.Tag != "" && !slices.Contains(op.Tags, input.Tag) {
			continue
		}
		if input.Deprecated && !op.Deprecated {
			continue
		}
		matched = append(matched, op)
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output := listOperationsOutput{
		Total:      len(all),
		Matched:    len(matched),
		Returned:   len(returned),
		Operations: makeSlice[operationSummary](len(returned)),
	}
	for _, op := range returned {
		output.Operations = append(output.Operations, summarizeOperation(op))
	}
	return nil, output, nil
}

type getOperationInput struct {
	Spec        specInput `json:"spec"               jsonschema:"The OpenAPI document to read"`
	APIRoot     string    `json:"api_root,omitempty" jsonschema:"Root prefix of the API (default from OASROUTER_API_ROOT)"`
	OperationID string    `json:"operation_id"       jsonschema:"The operationId to look up"`
}

type parameterSummary struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required,omitempty"`
	Style    string `json:"style"`
	Explode  bool   `json:"explode"`
}

type operationDetail struct {
	operationSummary
	Description string                `json:"description,omitempty"`
	PathParams  []string              `json:"path_params,omitempty"`
	Specificity int                   `json:"specificity"`
	Parameters  []parameterSummary    `json:"parameters,omitempty"`
	Security    []map[string][]string `json:"security"`
}

func describeOperation(op *router.Operation) operationDetail {
	detail := operationDetail{
		operationSummary: summarizeOperation(op),
		Description:      op.Description,
		PathParams:       op.PathParamNames(),
		Specificity:      op.Specificity(),
		Parameters:       makeSlice[parameterSummary](len(op.Parameters)),
		Security:         make([]map[string][]string, 0, len(op.Security)),
	}
	for _, p := range op.Parameters {
		detail.Parameters = append(detail.Parameters, summarizeParameter(p))
	}
	for _, req := range op.Security {
		detail.Security = append(detail.Security, map[string][]string(req))
	}
	return detail
}

func summarizeParameter(p *contract.Parameter) parameterSummary {
	return parameterSummary{
		Name:     p.Name,
		In:       p.In,
		Required: p.Required,
		Style:    p.EffectiveStyle(),
		Explode:  p.EffectiveExplode(),
	}
}

func handleGetOperation(_ context.Context, _ *mcp.CallToolRequest, input getOperationInput) (*mcp.CallToolResult, any, error) {
	if input.OperationID == "" {
		return errResult(fmt.Errorf("operation_id is required")), nil, nil
	}
	r, err := input.Spec.resolve(input.APIRoot)
	if err != nil {
		return errResult(err), nil, nil
	}

	op, ok := r.GetOperation(input.OperationID)
	if !ok {
		return errResult(fmt.Errorf("operation %q not found", input.OperationID)), nil, nil
	}
	return nil, describeOperation(op), nil
}
