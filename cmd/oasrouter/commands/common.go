// Package commands provides CLI command handlers for oasrouter.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/oasrouter"
	"github.com/erraggy/oasrouter/contract"
	"github.com/erraggy/oasrouter/router"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Standard streams used by the handlers. Tests replace them.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// NewLogger returns a text logger on Stderr. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(Stderr, &slog.HandlerOptions{Level: level}))
}

// LoadRouter reads a contract from specPath, or Stdin when specPath is
// StdinFilePath, and builds a router over it.
func LoadRouter(specPath, apiRoot string, verbose bool) (*router.Router, error) {
	var data []byte
	var err error
	if specPath == StdinFilePath {
		data, err = io.ReadAll(Stdin)
	} else {
		data, err = os.ReadFile(specPath) //nolint:gosec // G304 - user-supplied spec path is the point
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatSpecPath(specPath), err)
	}

	doc, err := contract.Parse(FormatSpecPath(specPath), data)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(verbose).With("component", "cli")
	return router.New(doc,
		router.WithAPIRoot(apiRoot),
		router.WithLogger(router.NewSlogAdapter(logger)),
	)
}

// OutputSpecHeader writes the version and spec path to Stderr.
func OutputSpecHeader(specPath string) {
	Writef(Stderr, "oasrouter version: %s\n", oasrouter.Version())
	Writef(Stderr, "Specification: %s\n", FormatSpecPath(specPath))
}

// headerFlag collects repeated "Name: value" flags into a header map.
type headerFlag map[string][]string

// String returns the string representation of the flag value
func (h headerFlag) String() string {
	if h == nil {
		return ""
	}
	pairs := make([]string, 0, len(h))
	for k, vs := range h {
		for _, v := range vs {
			pairs = append(pairs, k+": "+v)
		}
	}
	return strings.Join(pairs, ", ")
}

// Set parses a "Name: value" header and appends it
func (h headerFlag) Set(value string) error {
	name, val, ok := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("invalid header format: %q (expected Name: value)", value)
	}
	h[name] = append(h[name], strings.TrimSpace(val))
	return nil
}
