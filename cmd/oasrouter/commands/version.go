package commands

import (
	"errors"
	"flag"

	"github.com/erraggy/oasrouter"
)

// HandleVersion prints the version, or all build metadata with -v.
func HandleVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "show commit, build time and Go version")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *verbose {
		Writef(Stdout, "oasrouter\n%s\n", oasrouter.BuildInfo())
		return nil
	}
	Writef(Stdout, "oasrouter %s\n", oasrouter.Version())
	return nil
}
