package router

import (
	"slices"
	"strings"

	"github.com/erraggy/oasrouter/oaserrors"
)

// MatchOperation resolves req to a single operation.
//
// An operation whose template literally equals the request path wins over
// any templated match. Otherwise every template accepting the path is a
// candidate; candidates are ranked by specificity, highest first, keeping
// document order on ties, and the first one declaring the request method is
// returned.
//
// In strict mode a failure returns a *oaserrors.RouteError matching
// oaserrors.ErrNotFound or oaserrors.ErrMethodNotAllowed. Otherwise both
// failures return (nil, nil).
func (r *Router) MatchOperation(req Request, strict bool) (*Operation, error) {
	req = NormalizeRequest(req)

	fail := func(err *oaserrors.RouteError) (*Operation, error) {
		r.logger.Debug("no operation matched", "method", req.Method, "path", req.Path, "status", err.Status)
		if strict {
			return nil, err
		}
		return nil, nil
	}

	if !strings.HasPrefix(req.Path, r.apiRoot) {
		return fail(oaserrors.NewNotFound(req.Method, req.Path))
	}
	path := r.StripRoot(req.Path)

	for _, op := range r.operations {
		if op.Path == path && op.Method == req.Method {
			r.logger.Debug("matched exact path", "method", req.Method, "path", op.Path, "operationId", op.OperationID)
			return op.clone(), nil
		}
	}

	var candidates []*Operation
	for _, op := range r.operations {
		if op.template.matches(path) {
			candidates = append(candidates, op)
		}
	}
	if len(candidates) == 0 {
		return fail(oaserrors.NewNotFound(req.Method, req.Path))
	}

	slices.SortStableFunc(candidates, func(a, b *Operation) int {
		return b.template.specificity - a.template.specificity
	})

	for _, op := range candidates {
		if op.Method == req.Method {
			r.logger.Debug("matched path template", "method", req.Method, "path", op.Path, "operationId", op.OperationID, "candidates", len(candidates))
			return op.clone(), nil
		}
	}

	return fail(oaserrors.NewMethodNotAllowed(req.Method, req.Path, allowedMethods(candidates)))
}

// allowedMethods returns the distinct methods of candidates in rank order.
func allowedMethods(candidates []*Operation) []string {
	var methods []string
	for _, op := range candidates {
		if !slices.Contains(methods, op.Method) {
			methods = append(methods, op.Method)
		}
	}
	return methods
}
