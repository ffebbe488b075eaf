package commands

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/erraggy/oasrouter/oaserrors"
	"github.com/erraggy/oasrouter/router"
)

// MatchFlags contains flags for the match command
type MatchFlags struct {
	APIRoot string
	Format  string
	Verbose bool
}

// MatchResult is the structured output of the match command.
type MatchResult struct {
	Matched     bool              `json:"matched" yaml:"matched"`
	Status      int               `json:"status" yaml:"status"`
	Message     string            `json:"message,omitempty" yaml:"message,omitempty"`
	Allowed     []string          `json:"allowed,omitempty" yaml:"allowed,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Path        string            `json:"path,omitempty" yaml:"path,omitempty"`
	OperationID string            `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	PathParams  map[string]string `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
}

// SetupMatchFlags creates and configures a FlagSet for the match command.
func SetupMatchFlags() (*flag.FlagSet, *MatchFlags) {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	flags := &MatchFlags{}

	fs.StringVar(&flags.APIRoot, "root", router.DefaultAPIRoot, "API root prefix")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Verbose, "v", false, "log routing decisions to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasrouter match [flags] <file|-> <method> <path>\n\n")
		Writef(output, "Resolve a request to an operation of an OpenAPI document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasrouter match openapi.yaml GET /pets/42\n")
		Writef(output, "  oasrouter match -root /api -format json openapi.yaml DELETE /api/pets/42\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    An operation matched\n")
		Writef(output, "  1    No route matches (404) or the method is not allowed (405)\n")
	}

	return fs, flags
}

// HandleMatch executes the match command
func HandleMatch(args []string) error {
	fs, flags := SetupMatchFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("match command requires a file path, a method and a request path")
	}

	r, err := LoadRouter(fs.Arg(0), flags.APIRoot, flags.Verbose)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	req := router.Request{Method: fs.Arg(1), Path: fs.Arg(2)}
	result, matchErr := matchRequest(r, req)
	if matchErr != nil && !errors.As(matchErr, new(*oaserrors.RouteError)) {
		return fmt.Errorf("match: %w", matchErr)
	}

	if flags.Format != FormatText {
		if err := RenderStructured(Stdout, result, flags.Format); err != nil {
			return err
		}
	} else {
		renderMatchText(result)
	}
	return matchErr
}

func matchRequest(r *router.Router, req router.Request) (MatchResult, error) {
	op, err := r.MatchOperation(req, true)
	if err != nil {
		var routeErr *oaserrors.RouteError
		if !errors.As(err, &routeErr) {
			return MatchResult{}, err
		}
		return MatchResult{
			Status:  routeErr.Status,
			Message: routeErr.Error(),
			Allowed: routeErr.Allowed,
		}, err
	}
	return MatchResult{
		Matched:     true,
		Status:      http.StatusOK,
		Method:      op.Method,
		Path:        op.Path,
		OperationID: op.OperationID,
		PathParams:  r.ParseRequest(req, op).Params,
	}, nil
}

func renderMatchText(result MatchResult) {
	if !result.Matched {
		Writef(Stdout, "%s\n", result.Message)
		if len(result.Allowed) > 0 {
			Writef(Stdout, "Allow: %s\n", strings.ToUpper(strings.Join(result.Allowed, ", ")))
		}
		return
	}

	Writef(Stdout, "%s %s", strings.ToUpper(result.Method), result.Path)
	if result.OperationID != "" {
		Writef(Stdout, " (%s)", result.OperationID)
	}
	Writef(Stdout, "\n")

	names := make([]string, 0, len(result.PathParams))
	for name := range result.PathParams {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		Writef(Stdout, "  %s = %s\n", name, result.PathParams[name])
	}
}
