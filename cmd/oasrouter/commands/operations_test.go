package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOperationsFlags(t *testing.T) {
	fs, flags := SetupOperationsFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "/", flags.APIRoot)
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Deprecated)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-root", "/api", "-method", "get", "-tag", "pets", "-deprecated", "-format", "json", "-q", "api.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "/api", flags.APIRoot)
		assert.Equal(t, "get", flags.Method)
		assert.Equal(t, "pets", flags.Tag)
		assert.True(t, flags.Deprecated)
		assert.Equal(t, FormatJSON, flags.Format)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "api.yaml", fs.Arg(0))
	})
}

func TestHandleOperations_Text(t *testing.T) {
	stdout, _ := captureOutput(t)

	require.NoError(t, HandleOperations([]string{"-q", petsFile}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "GET\t/pets\tlistPets\t2\tpets", lines[0])
	assert.Equal(t, "DELETE\t/pets/{petId}\tdeletePet (deprecated)\t1\tadmin", lines[3])
	assert.Equal(t, "GET\t/pets/mine\tlistMyPets\t0\tpets", lines[4])
}

func TestHandleOperations_Table(t *testing.T) {
	stdout, _ := captureOutput(t)

	require.NoError(t, HandleOperations([]string{"-tag", "admin", petsFile}))

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "METHOD"))
	assert.Contains(t, out, "deletePet")
	assert.NotContains(t, out, "listPets")
}

func TestHandleOperations_JSON(t *testing.T) {
	stdout, _ := captureOutput(t)

	require.NoError(t, HandleOperations([]string{"-format", "json", "-method", "GET", petsFile}))

	var ops []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &ops))
	require.Len(t, ops, 3)
	assert.Equal(t, "listPets", ops[0]["operationId"])
	assert.Equal(t, "get", ops[0]["method"])
}

func TestHandleOperations_NoMatches(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		stdout, stderr := captureOutput(t)
		require.NoError(t, HandleOperations([]string{"-tag", "missing", petsFile}))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "No operations found")
	})

	t.Run("json is an empty array", func(t *testing.T) {
		stdout, _ := captureOutput(t)
		require.NoError(t, HandleOperations([]string{"-format", "json", "-tag", "missing", petsFile}))
		assert.JSONEq(t, "[]", stdout.String())
	})
}

func TestHandleOperations_Errors(t *testing.T) {
	captureOutput(t)

	assert.Error(t, HandleOperations([]string{}))
	assert.Error(t, HandleOperations([]string{"-format", "xml", petsFile}))
	assert.Error(t, HandleOperations([]string{"testdata/missing.yaml"}))
	assert.NoError(t, HandleOperations([]string{"--help"}))
}
