// Package contract models the parts of an OpenAPI document that request
// routing depends on: path templates, per-method operations, parameter
// declarations and security requirements.
//
// Unlike a general-purpose OpenAPI model, [Paths] and [PathItem.Operations]
// are ordered slices, because operation lookup must follow document order.
//
// # Decoding
//
// [Parse] accepts JSON or YAML:
//
//	data, _ := os.ReadFile("openapi.yaml")
//	doc, err := contract.Parse("openapi.yaml", data)
//	if err != nil {
//	    var parseErr *oaserrors.ParseError
//	    if errors.As(err, &parseErr) {
//	        log.Fatalf("line %d: %v", parseErr.Line, err)
//	    }
//	}
//
// # Building documents in code
//
//	doc := &contract.Document{}
//	item := doc.AddPath("/pets/{id}", nil)
//	item.SetOperation("get", &contract.Operation{OperationID: "getPet"})
//
// Documents are read-only once handed to a router.
package contract
