package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasrouter/contract"
)

const testContract = `openapi: "3.0.3"
info:
  title: Router Test
  version: "1.0.0"
security:
  - apiKey: []
paths:
  /pets:
    parameters:
      - name: limit
        in: query
      - name: tags
        in: query
        description: shared
    get:
      operationId: listPets
      tags: [pets]
      parameters:
        - name: tags
          in: query
          style: pipeDelimited
          explode: false
        - name: fields
          in: query
          explode: false
        - name: words
          in: query
          style: spaceDelimited
          explode: false
    post:
      operationId: createPet
      security:
        - oauth: [write]
  /pets/{id}:
    get:
      operationId: getPet
    delete:
      operationId: deletePet
  /pets/mine:
    get:
      operationId: listMyPets
      security: []
  /pets/{id}/photos:
    get:
      operationId: listPetPhotos
  /widgets/{id}:
    get:
      operationId: getWidget
  /{category}/{id}:
    put:
      operationId: putAnything
`

// testOperationIDs lists the operation IDs of testContract in document order.
var testOperationIDs = []string{
	"listPets", "createPet", "getPet", "deletePet", "listMyPets",
	"listPetPhotos", "getWidget", "putAnything",
}

func parseTestContract(t *testing.T) *contract.Document {
	t.Helper()
	doc, err := contract.Parse("router_test.yaml", []byte(testContract))
	require.NoError(t, err)
	return doc
}

func newTestRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()
	r, err := New(parseTestContract(t), opts...)
	require.NoError(t, err)
	return r
}

type logEntry struct {
	level string
	msg   string
	attrs []any
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	entries *[]logEntry
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{entries: &[]logEntry{}}
}

func (l recordingLogger) record(level, msg string, attrs []any) {
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, attrs: attrs})
}

func (l recordingLogger) Debug(msg string, attrs ...any) { l.record("debug", msg, attrs) }
func (l recordingLogger) Info(msg string, attrs ...any)  { l.record("info", msg, attrs) }
func (l recordingLogger) Warn(msg string, attrs ...any)  { l.record("warn", msg, attrs) }
func (l recordingLogger) Error(msg string, attrs ...any) { l.record("error", msg, attrs) }
func (l recordingLogger) With(_ ...any) Logger           { return l }

func (l recordingLogger) count(level string) int {
	n := 0
	for _, e := range *l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}
