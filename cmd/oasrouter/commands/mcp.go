package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasrouter/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio and blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasrouter mcp\n\n")
		Writef(output, "Serve list_operations, get_operation, match_request and parse_request\n")
		Writef(output, "as Model Context Protocol tools over stdio.\n\n")
		Writef(output, "Configuration is read from OASROUTER_* environment variables, e.g.:\n")
		Writef(output, "  OASROUTER_API_ROOT          root prefix stripped before matching (default /)\n")
		Writef(output, "  OASROUTER_CACHE_ENABLED     cache routers between calls (default true)\n")
		Writef(output, "  OASROUTER_CACHE_MAX_SIZE    maximum number of cached routers (default 10)\n")
		Writef(output, "  OASROUTER_MAX_INLINE_SIZE   maximum inline document size in bytes (default 10MiB)\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
