// Package router maps requests onto the operations of an OpenAPI contract
// and decomposes them into parameters.
//
// # Overview
//
// A Router is built once over a [contract.Document]. It flattens the
// document's path/method tree into [Operation] descriptors, compiling each
// path template a single time. The Router never modifies the document and
// holds no per-request state, so one Router may serve any number of
// goroutines.
//
// # Matching
//
// [Router.MatchOperation] normalizes the request (lowercase method, query
// string and trailing slashes dropped, exactly one leading slash), strips
// the API root, and resolves the path in two phases:
//
//  1. Exact: an operation whose template literally equals the path and
//     whose method equals the request method is returned immediately.
//  2. Template: every template accepting the path is a candidate.
//     Candidates are ranked by specificity, the length of the template
//     with its placeholders removed, and the first candidate declaring the
//     request method is returned.
//
// Given "/pets/{id}" and "/pets/{id}/photos", the path "/pets/1/photos"
// resolves to the second template.
//
// In strict mode failures are returned as *oaserrors.RouteError values whose
// text is one of two fixed messages:
//
//	404-notFound: no route matches request
//	405-methodNotAllowed: this method is not registered for the route
//
// In non-strict mode both failures return a nil operation and a nil error.
//
// # Parsing
//
// [Router.ParseRequest] decodes a request into a [ParsedRequest]:
//
//   - headers, with lowercase names ([Header])
//   - cookies, from every cookie header value joined with "; "
//   - query, decoded with nested bracket syntax ([querystring.Parse]) unless
//     the request already carries a decoded query
//   - path parameters, captured by the operation's template
//   - the body, decoded as JSON when it is text holding valid JSON ([Body])
//
// Query parameters declared with explode: false and a form, spaceDelimited
// or pipeDelimited style always decode to arrays:
//
//	a=1|2|3        (pipeDelimited)  -> a: ["1", "2", "3"]
//	b=1%202%203    (spaceDelimited) -> b: ["1", "2", "3"]
//
// Parsing never fails. Values that cannot be decoded keep their raw form.
//
// # Example
//
//	doc, err := contract.Parse("api.yaml", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := router.New(doc, router.WithAPIRoot("/api"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op, err := r.MatchOperation(router.Request{Method: "GET", Path: "/api/pets/1"}, true)
//	if errors.Is(err, oaserrors.ErrNotFound) {
//	    // respond 404
//	}
//	parsed := r.ParseRequest(router.Request{Method: "GET", Path: "/api/pets/1"}, op)
//	fmt.Println(parsed.Params["id"])
package router
