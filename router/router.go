package router

import (
	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/oaserrors"
)

// Router matches requests against the operations of a contract document and
// parses their parameters. A Router is immutable after New and safe for
// concurrent use.
type Router struct {
	doc        *contract.Document
	apiRoot    string
	logger     Logger
	operations []*Operation
}

// New builds a Router over doc. Every path template is compiled once here;
// doc must not be modified while the Router is in use.
//
// Returns a ConfigError if doc is nil or an option is invalid. Operations
// under a malformed path template are left out and logged as a warning.
func New(doc *contract.Document, opts ...Option) (*Router, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document is required"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	r := &Router{
		doc:     doc,
		apiRoot: cfg.apiRoot,
		logger:  cfg.logger,
	}
	r.operations = buildOperations(doc, r.logger)
	r.logger.Debug("router ready", "apiRoot", r.apiRoot, "operations", len(r.operations))
	return r, nil
}

// Document returns the contract document the Router was built over.
func (r *Router) Document() *contract.Document {
	return r.doc
}

// APIRoot returns the normalized root prefix.
func (r *Router) APIRoot() string {
	return r.apiRoot
}
