package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/erraggy/oasrouter/oaserrors"
	"github.com/erraggy/oasrouter/router"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type matchRequestInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OpenAPI document to match against"`
	APIRoot string    `json:"api_root,omitempty" jsonschema:"Root prefix of the API (default from OASROUTER_API_ROOT)"`
	Method  string    `json:"method"             jsonschema:"HTTP method of the request"`
	Path    string    `json:"path"               jsonschema:"Request path, optionally with a query string"`
}

type matchRequestOutput struct {
	Matched    bool              `json:"matched"`
	Status     int               `json:"status"`
	Message    string            `json:"message,omitempty"`
	Allowed    []string          `json:"allowed,omitempty"`
	Operation  *operationSummary `json:"operation,omitempty"`
	PathParams map[string]string `json:"path_params,omitempty"`
}

func handleMatchRequest(_ context.Context, _ *mcp.CallToolRequest, input matchRequestInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Method) == "" {
		return errResult(fmt.Errorf("method is required")), nil, nil
	}
	r, err := input.Spec.resolve(input.APIRoot)
	if err != nil {
		return errResult(err), nil, nil
	}

	req := router.Request{Method: input.Method, Path: input.Path}
	op, err := r.MatchOperation(req, true)
	if err != nil {
		var routeErr *oaserrors.RouteError
		if !errors.As(err, &routeErr) {
			return errResult(err), nil, nil
		}
		return nil, matchRequestOutput{
			Status:  routeErr.Status,
			Message: routeErr.Error(),
			Allowed: routeErr.Allowed,
		}, nil
	}

	summary := summarizeOperation(op)
	return nil, matchRequestOutput{
		Matched:    true,
		Status:     http.StatusOK,
		Operation:  &summary,
		PathParams: r.ParseRequest(req, op).Params,
	}, nil
}
