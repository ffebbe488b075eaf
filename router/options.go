package router

import (
	"strings"

	"github.com/erraggy/oasrouter/oaserrors"
)

// DefaultAPIRoot is the root prefix used when WithAPIRoot is not given.
const DefaultAPIRoot = "/"

// Option configures a Router.
type Option func(*config) error

type config struct {
	apiRoot string
	logger  Logger
}

// applyOptions applies option functions over the defaults.
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		apiRoot: DefaultAPIRoot,
		logger:  NopLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithAPIRoot sets the prefix under which every operation path is served,
// e.g. "/api/v1". The root is normalized like a request path, so "api/v1/"
// and "/api/v1" are equivalent. Returns a ConfigError if the root contains
// a query string or a path template placeholder.
func WithAPIRoot(root string) Option {
	return func(cfg *config) error {
		if strings.ContainsAny(root, "?{}") {
			return &oaserrors.ConfigError{
				Option:  "apiRoot",
				Value:   root,
				Message: "must be a plain path without query string or placeholders",
			}
		}
		cfg.apiRoot = NormalizePath(root)
		return nil
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
