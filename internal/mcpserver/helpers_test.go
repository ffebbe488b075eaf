package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// petsSpec is a small contract shared by the tool tests.
const petsSpec = `openapi: "3.0.3"
info:
  title: Pets
  version: "1.0.0"
security:
  - apiKey: []
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      parameters:
        - name: tags
          in: query
          style: pipeDelimited
          explode: false
        - name: limit
          in: query
          required: true
    post:
      operationId: createPet
      tags: [pets]
      security: []
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
    get:
      operationId: getPet
      tags: [pets]
    delete:
      operationId: deletePet
      tags: [admin]
      deprecated: true
  /stores:
    get:
      operationId: listStores
      tags: [stores]
`

// withConfig replaces fields of cfg for the duration of a test and clears
// the router cache on both ends.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	orig := *cfg
	mutate(cfg)
	routerCache.reset()
	t.Cleanup(func() {
		*cfg = orig
		routerCache.reset()
	})
}

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasrouter-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

// unmarshalStructured decodes the structured content of a tool result.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m))
	return m
}

// resultText returns the text of the first content item.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}
