package commands

import (
	"bytes"
	"strings"
	"testing"
)

const petsFile = "testdata/pets.yaml"

// captureOutput redirects Stdout and Stderr for the duration of a test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	origOut, origErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() {
		Stdout, Stderr = origOut, origErr
	})
	return stdout, stderr
}

// withStdin replaces Stdin with content for the duration of a test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	orig := Stdin
	Stdin = strings.NewReader(content)
	t.Cleanup(func() { Stdin = orig })
}
