// Package oasrouter resolves HTTP requests against an OpenAPI contract.
//
// The module is organized as a small set of packages:
//
//   - contract: decode an OpenAPI document into its paths, operations,
//     parameters and security requirements
//   - router: match a request to an operation and decompose it into
//     path parameters, query values, headers, cookies and body
//   - querystring: decode query strings with nested bracket syntax
//   - oaserrors: structured error types for routing, parsing and
//     configuration failures
//
// The oasrouter command exposes the same operations on the command line
// and as tools over the Model Context Protocol.
//
// # Quick Start
//
//	data, err := os.ReadFile("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := contract.Parse("openapi.yaml", data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := router.New(doc, router.WithAPIRoot("/api"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	req := router.Request{Method: "GET", Path: "/api/pets/42?fields=name"}
//	op, err := r.MatchOperation(req, true)
//	if err != nil {
//		log.Fatal(err) // 404 or 405, see oaserrors.RouteError
//	}
//	parsed := r.ParseRequest(req, op)
//	fmt.Println(op.OperationID, parsed.Params["petId"])
//
// This package itself only carries build metadata.
package oasrouter
