package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePoint(t *testing.T) {
	dir := writeSchemas(t, pointSchema)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"name":"Point"`)
	assert.Contains(t, output, `{"default":0,"name":"z","type":"int"}`)
}

func TestCompileDeterministic(t *testing.T) {
	dir := writeSchemas(t, pointSchema)

	run := func() string {
		buf := &bytes.Buffer{}
		cmd := NewCompileCommand(&RootOptions{Format: "text"})
		cmd.SetOut(buf)
		cmd.SetArgs([]string{dir})
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	assert.Equal(t, run(), run())
}

func TestCompileJSON(t *testing.T) {
	dir := writeSchemas(t, pointSchema)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCompileOutputFile(t *testing.T) {
	dir := writeSchemas(t, pointSchema)
	outPath := filepath.Join(t.TempDir(), "compiled.json")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "-o", outPath})

	err := cmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result CompileResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Point", result.Records[0].Name)
	assert.NotEmpty(t, result.Records[0].Hash)
}

func TestCompileNonExistentDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/directory/path"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompileMultipleRecords(t *testing.T) {
	dir := writeSchemas(t, `package schemas

record: Point: {
	x: int
	y: int
}

record: User: {
	name:   string
	active: bool | *true
}
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Records, 2)

	names := []string{resp.Data.Records[0].Name, resp.Data.Records[1].Name}
	assert.ElementsMatch(t, []string{"Point", "User"}, names)
}
