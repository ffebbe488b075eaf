// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasrouter request matching and parsing as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasrouter"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasrouter MCP server: lists the operations of an OpenAPI contract, resolves requests to operations, and decomposes requests into path, query, cookie, header and body parameters.

Configuration: All defaults are configurable via OASROUTER_* environment variables set in your MCP client config.

Key settings:
- OASROUTER_API_ROOT (default: /) - root prefix stripped before matching; tools accept api_root to override per call
- OASROUTER_CACHE_ENABLED (default: true) - disable router caching entirely
- OASROUTER_CACHE_MAX_SIZE (default: 10) - maximum number of cached routers
- OASROUTER_CACHE_FILE_TTL (default: 15m) - cache TTL for file specs
- OASROUTER_CACHE_CONTENT_TTL (default: 15m) - cache TTL for inline specs
- OASROUTER_CACHE_SWEEP_INTERVAL (default: 60s) - how often expired entries are removed
- OASROUTER_LIST_LIMIT (default: 100) - default result limit for list_operations
- OASROUTER_MAX_LIMIT (default: 1000) - upper bound on any requested limit
- OASROUTER_MAX_INLINE_SIZE (default: 10MiB) - maximum inline spec size

Caching: Routers are cached per session. File entries use path+mtime+api root as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		routerCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasrouter", Version: oasrouter.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations of an OpenAPI contract in document order. Each entry has the method, path template, operationId, tags and the number of merged parameters. Filter by method, tag or deprecated status. Use offset/limit to paginate; the default limit is configurable via OASROUTER_LIST_LIMIT.",
	}, handleListOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_operation",
		Description: "Get one operation of an OpenAPI contract by operationId. Returns the merged parameter declarations (operation-level first, then path-level ones not overridden) with their effective style and explode settings, the path template placeholders, and the effective security requirement.",
	}, handleGetOperation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match_request",
		Description: "Resolve an HTTP method and path to a single operation of an OpenAPI contract. Exact path matches win over templates; overlapping templates are ranked by literal length. Returns the matched operation and path parameters, or a 404/405 status with the allowed methods.",
	}, handleMatchRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_request",
		Description: "Decompose a request into path parameters, query parameters, cookies, lowercase headers and a JSON-decoded body, following the serialization style of the matched operation's parameters (e.g. pipeDelimited arrays). Set operation_id to parse against a specific operation; otherwise the request is matched first. Parsing never fails: undecodable parts are returned raw.",
	}, handleParseRequest)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
