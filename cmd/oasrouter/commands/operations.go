package commands

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oasrouter/router"
)

// OperationsFlags contains flags for the operations command
type OperationsFlags struct {
	APIRoot    string
	Method     string
	Tag        string
	Deprecated bool
	Format     string
	Quiet      bool
	Verbose    bool
}

// SetupOperationsFlags creates and configures a FlagSet for the operations command.
func SetupOperationsFlags() (*flag.FlagSet, *OperationsFlags) {
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	flags := &OperationsFlags{}

	fs.StringVar(&flags.APIRoot, "root", router.DefaultAPIRoot, "API root prefix")
	fs.StringVar(&flags.Method, "method", "", "filter by HTTP method (e.g., get, post)")
	fs.StringVar(&flags.Tag, "tag", "", "filter by tag")
	fs.BoolVar(&flags.Deprecated, "deprecated", false, "only show deprecated operations")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows without headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows without headers")
	fs.BoolVar(&flags.Verbose, "v", false, "log routing decisions to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasrouter operations [flags] <file|->\n\n")
		Writef(output, "List the operations of an OpenAPI document in document order.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasrouter operations openapi.yaml\n")
		Writef(output, "  oasrouter operations -method get -tag pets openapi.yaml\n")
		Writef(output, "  cat openapi.yaml | oasrouter operations -format json -\n")
	}

	return fs, flags
}

// HandleOperations executes the operations command
func HandleOperations(args []string) error {
	fs, flags := SetupOperationsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("operations command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)
	r, err := LoadRouter(specPath, flags.APIRoot, flags.Verbose)
	if err != nil {
		return fmt.Errorf("operations: %w", err)
	}
	if flags.Verbose {
		OutputSpecHeader(specPath)
	}

	matched := filterOperations(r.ListOperations(), flags.Method, flags.Tag, flags.Deprecated)

	if flags.Format != FormatText {
		if matched == nil {
			matched = []*router.Operation{}
		}
		return RenderStructured(Stdout, matched, flags.Format)
	}

	if len(matched) == 0 {
		if !flags.Quiet {
			Writef(Stderr, "No operations found.\n")
		}
		return nil
	}

	headers := []string{"METHOD", "PATH", "OPERATION ID", "PARAMS", "TAGS"}
	rows := make([][]string, 0, len(matched))
	for _, op := range matched {
		id := op.OperationID
		if op.Deprecated {
			id += " (deprecated)"
		}
		rows = append(rows, []string{
			strings.ToUpper(op.Method),
			op.Path,
			id,
			strconv.Itoa(len(op.Parameters)),
			strings.Join(op.Tags, ","),
		})
	}
	RenderSummaryTable(Stdout, headers, rows, flags.Quiet)
	return nil
}

func filterOperations(ops []*router.Operation, method, tag string, deprecated bool) []*router.Operation {
	var out []*router.Operation
	for _, op := range ops {
		if method != "" && !strings.EqualFold(op.Method, method) {
			continue
		}
		if tag != "" && !slices.Contains(op.Tags, tag) {
			continue
		}
		if deprecated && !op.Deprecated {
			continue
		}
		out = append(out, op)
	}
	return out
}
