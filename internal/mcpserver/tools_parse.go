package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasrouter/querystring"
	"github.com/erraggy/oasrouter/router"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseRequestInput struct {
	Spec        specInput           `json:"spec"                   jsonschema:"The OpenAPI document to parse against"`
	APIRoot     string              `json:"api_root,omitempty"     jsonschema:"Root prefix of the API (default from OASROUTER_API_ROOT)"`
	Method      string              `json:"method"                 jsonschema:"HTTP method of the request"`
	Path        string              `json:"path"                   jsonschema:"Request path, optionally with a query string"`
	Headers     map[string][]string `json:"headers,omitempty"      jsonschema:"Request headers; names in any case"`
	Query       map[string]any      `json:"query,omitempty"        jsonschema:"Already-decoded query; used instead of the query string"`
	Body        string              `json:"body,omitempty"         jsonschema:"Raw request body"`
	OperationID string              `json:"operation_id,omitempty" jsonschema:"Parse against this operation instead of matching the request"`
}

type parseRequestOutput struct {
	OperationID   string              `json:"operation_id,omitempty"`
	Matched       bool                `json:"matched"`
	Method        string              `json:"method"`
	Path          string              `json:"path"`
	Params        map[string]string   `json:"params"`
	Query         map[string]any      `json:"query"`
	Cookies       map[string]string   `json:"cookies"`
	Headers       map[string][]string `json:"headers"`
	Body          any                 `json:"body,omitempty"`
	BodyDecoded   bool                `json:"body_decoded"`
	BodyError     string              `json:"body_error,omitempty"`
	QueryConflict bool                `json:"query_conflict,omitempty"`
}

func handleParseRequest(_ context.Context, _ *mcp.CallToolRequest, input parseRequestInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Method) == "" {
		return errResult(fmt.Errorf("method is required")), nil, nil
	}
	r, err := input.Spec.resolve(input.APIRoot)
	if err != nil {
		return errResult(err), nil, nil
	}

	req := router.Request{Method: input.Method, Path: input.Path, Headers: input.Headers}
	if input.Body != "" {
		req.Body = input.Body
	}
	if input.Query != nil {
		req.Query, err = querystring.ValuesFromMap(input.Query)
		if err != nil {
			return errResult(err), nil, nil
		}
	}

	var op *router.Operation
	if input.OperationID != "" {
		var ok bool
		op, ok = r.GetOperation(input.OperationID)
		if !ok {
			return errResult(fmt.Errorf("operation %q not found", input.OperationID)), nil, nil
		}
	} else {
		// A request matching nothing is still parsed, without an operation.
		op, _ = r.MatchOperation(req, false)
	}

	parsed := r.ParseRequest(req, op)
	output := parseRequestOutput{
		Matched:       op != nil,
		Method:        parsed.Method,
		Path:          parsed.Path,
		Params:        parsed.Params,
		Query:         parsed.Query.Interface(),
		Cookies:       parsed.Cookies,
		Headers:       parsed.Headers.Map(),
		Body:          parsed.RequestBody.Value,
		BodyDecoded:   parsed.RequestBody.Decoded,
		QueryConflict: parsed.QueryConflict,
	}
	if op != nil {
		output.OperationID = op.OperationID
	}
	if parsed.RequestBody.Err != nil {
		output.BodyError = parsed.RequestBody.Err.Error()
	}
	return nil, output, nil
}
