package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/erraggy/oasrouter/router"
	"go.yaml.in/yaml/v4"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	APIRoot     string
	Headers     headerFlag
	Body        string
	OperationID string
	Format      string
	Verbose     bool
}

// ParseResult is the structured output of the parse command.
type ParseResult struct {
	OperationID string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Request     *router.ParsedRequest `json:"request" yaml:"request"`
	BodyError   string                `json:"bodyError,omitempty" yaml:"bodyError,omitempty"`
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{Headers: headerFlag{}}

	fs.StringVar(&flags.APIRoot, "root", router.DefaultAPIRoot, "API root prefix")
	fs.Var(flags.Headers, "H", "request header as 'Name: value' (repeatable)")
	fs.StringVar(&flags.Body, "d", "", "raw request body")
	fs.StringVar(&flags.OperationID, "op", "", "parse against this operationId instead of matching")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Verbose, "v", false, "log routing decisions to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasrouter parse [flags] <file|-> <method> <path>\n\n")
		Writef(output, "Decompose a request into path, query, header, cookie and body parameters.\n")
		Writef(output, "A request matching no operation is still parsed, without path parameters.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasrouter parse openapi.yaml GET '/pets?tags=a|b&limit=10'\n")
		Writef(output, "  oasrouter parse -H 'Cookie: session=abc' -d '{\"name\":\"rex\"}' openapi.yaml POST /pets\n")
		Writef(output, "  oasrouter parse -op getPet -format json openapi.yaml GET /pets/42\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

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
		return fmt.Errorf("parse command requires a file path, a method and a request path")
	}

	r, err := LoadRouter(fs.Arg(0), flags.APIRoot, flags.Verbose)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	req := router.Request{Method: fs.Arg(1), Path: fs.Arg(2), Headers: flags.Headers}
	if flags.Body != "" {
		req.Body = flags.Body
	}

	var op *router.Operation
	if flags.OperationID != "" {
		var ok bool
		op, ok = r.GetOperation(flags.OperationID)
		if !ok {
			return fmt.Errorf("parse: operation %q not found", flags.OperationID)
		}
	} else {
		op, _ = r.MatchOperation(req, false)
	}

	result := ParseResult{Request: r.ParseRequest(req, op)}
	if op != nil {
		result.OperationID = op.OperationID
	}
	if result.Request.RequestBody.Err != nil {
		result.BodyError = result.Request.RequestBody.Err.Error()
	}

	if flags.Format != FormatText {
		return RenderStructured(Stdout, result, flags.Format)
	}
	return renderParseText(result)
}

func renderParseText(result ParseResult) error {
	parsed := result.Request

	if result.OperationID != "" {
		Writef(Stdout, "Operation: %s\n", result.OperationID)
	} else {
		Writef(Stdout, "Operation: <none>\n")
	}
	Writef(Stdout, "Request: %s %s\n", strings.ToUpper(parsed.Method), parsed.Path)

	writeStringMap(Stdout, "Path Parameters", parsed.Params)

	if len(parsed.Query) > 0 {
		Writef(Stdout, "Query:\n")
		data, err := yaml.Marshal(parsed.Query)
		if err != nil {
			return fmt.Errorf("marshaling query: %w", err)
		}
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			Writef(Stdout, "  %s\n", line)
		}
	}
	if parsed.QueryConflict {
		Writef(Stdout, "  (query string ignored)\n")
	}

	writeStringMap(Stdout, "Cookies", parsed.Cookies)

	if parsed.Headers.Len() > 0 {
		Writef(Stdout, "Headers:\n")
		for _, name := range parsed.Headers.Keys() {
			Writef(Stdout, "  %s: %s\n", name, strings.Join(parsed.Headers.Values(name), ", "))
		}
	}

	switch {
	case parsed.RequestBody.IsEmpty():
		return nil
	case parsed.RequestBody.Decoded:
		Writef(Stdout, "Body (json):\n")
		if err := RenderStructured(Stdout, parsed.RequestBody.Value, FormatJSON); err != nil {
			return err
		}
	default:
		Writef(Stdout, "Body (raw): %v\n", parsed.RequestBody.Value)
		if result.BodyError != "" {
			Writef(Stdout, "  not JSON: %s\n", result.BodyError)
		}
	}
	return nil
}

func writeStringMap(w io.Writer, title string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	Writef(w, "%s:\n", title)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		Writef(w, "  %s = %s\n", k, m[k])
	}
}
