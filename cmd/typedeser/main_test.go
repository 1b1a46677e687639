package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunDecodesJSON(t *testing.T) {
	dir := t.TempDir()

	schemaPath := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte("name: str\n"), 0o644))

	inputPath := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(`{"name":"Ada"}`), 0o644))

	err := run(cliOptions{schemaPath: schemaPath, inputPath: inputPath, format: "auto"})
	require.NoError(t, err)
}

func TestRunRejectsMissingFlags(t *testing.T) {
	err := run(cliOptions{})
	require.Error(t, err)
}

func TestRunReportsBadSchemaPath(t *testing.T) {
	err := run(cliOptions{schemaPath: "/does/not/exist.yaml", inputPath: "/does/not/exist.json"})
	require.Error(t, err)
}

func TestInferFormat(t *testing.T) {
	require.Equal(t, "msgpack", inferFormat("data.msgpack"))
	require.Equal(t, "msgpack", inferFormat("data.mp"))
	require.Equal(t, "json", inferFormat("data.json"))
	require.Equal(t, "json", inferFormat("data"))
}
