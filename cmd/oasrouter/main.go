package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasrouter/cmd/oasrouter/commands"
)

var handlers = map[string]func([]string) error{
	"operations": commands.HandleOperations,
	"match":      commands.HandleMatch,
	"parse":      commands.HandleParse,
	"mcp":        commands.HandleMCP,
	"version":    commands.HandleVersion,
}

// commandNames lists every command accepted on the command line, used for
// typo suggestions.
var commandNames = []string{"operations", "match", "parse", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "-v", "--version":
		command = "version"
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handler, ok := handlers[command]
	if !ok {
		_, _ = fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		_, _ = fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "" if there is none.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasrouter - OpenAPI Request Router

Usage:
  oasrouter <command> [options]

Commands:
  operations  List the operations of an OpenAPI document
  match       Resolve a method and path to an operation
  parse       Decompose a request into its parameters
  mcp         Serve the router as MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasrouter operations openapi.yaml
  oasrouter match openapi.yaml GET /pets/42
  oasrouter parse -H 'Cookie: session=abc' openapi.yaml GET '/pets?tags=a|b'
  oasrouter parse -format json -op createPet -d '{"name":"rex"}' openapi.yaml POST /pets

Run 'oasrouter <command> --help' for more information on a command.`)
}
