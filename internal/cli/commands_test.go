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

const (
	validDoc     = `<fetch><entity name="account"><attribute name="name"/></entity></fetch>`
	canonicalDoc = "<fetch>\n  <entity name=\"account\">\n    <attribute name=\"name\" />\n  </entity>\n</fetch>\n"
)

// runCLI executes the root command with the given arguments and returns
// stdout, stderr, and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate_ValidDocument(t *testing.T) {
	path := writeTemp(t, "query.xml", validDoc)

	out, _, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)
}

func TestValidate_WarningsStillValid(t *testing.T) {
	path := writeTemp(t, "query.xml", `<fetch mapping="logical"><entity name="account"/></fetch>`)

	out, _, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, "valid\n")
}

func TestValidate_InvalidDocument(t *testing.T) {
	path := writeTemp(t, "query.xml", "<notfetch/>")

	out, _, err := runCLI(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [parse_error]")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "validate", filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidate_SyntaxOnly(t *testing.T) {
	// Schema deviations pass the syntax-only gate; structural breakage
	// does not.
	lenient := writeTemp(t, "lenient.xml", `<fetch bogus="1"><entity name="account"/></fetch>`)
	_, _, err := runCLI(t, "validate", "--syntax-only", lenient)
	assert.NoError(t, err)

	broken := writeTemp(t, "broken.xml", "<fetch></fetch>")
	_, _, err = runCLI(t, "validate", "--syntax-only", broken)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidate_JSONOutput(t *testing.T) {
	path := writeTemp(t, "query.xml", validDoc)

	out, _, err := runCLI(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	path := writeTemp(t, "query.xml", validDoc)

	_, _, err := runCLI(t, "--format", "yaml", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestFormat_CanonicalizesToStdout(t *testing.T) {
	path := writeTemp(t, "query.xml", `<FETCH><Entity name="account"><attribute name="name"/></Entity></FETCH>`)

	out, _, err := runCLI(t, "format", path)
	require.NoError(t, err)
	assert.Equal(t, canonicalDoc, out)
}

func TestFormat_WriteBackIsIdempotent(t *testing.T) {
	path := writeTemp(t, "query.xml", validDoc)

	_, _, err := runCLI(t, "format", "-w", path)
	require.NoError(t, err)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, canonicalDoc, string(first))

	_, _, err = runCLI(t, "format", "-w", path)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormat_InvalidDocument(t *testing.T) {
	path := writeTemp(t, "query.xml", "")

	_, _, err := runCLI(t, "format", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestColumns_GeneratesDefaultLayout(t *testing.T) {
	path := writeTemp(t, "query.xml", `<fetch><entity name="account">
		<attribute name="name"/>
		<link-entity name="contact" from="parentcustomerid" to="accountid" alias="c">
			<attribute name="fullname"/>
		</link-entity>
	</entity></fetch>`)

	out, _, err := runCLI(t, "columns", path)
	require.NoError(t, err)

	assert.Contains(t, out, `<grid name="resultset"`)
	assert.Contains(t, out, `jump="name"`)
	assert.Contains(t, out, `id="accountid"`)
	assert.Contains(t, out, `<cell name="name"`)
	assert.Contains(t, out, `<cell name="c.fullname"`)
}

func TestColumns_MergePreservesExistingLayout(t *testing.T) {
	queryPath := writeTemp(t, "query.xml", `<fetch><entity name="account">
		<attribute name="name"/>
		<attribute name="revenue"/>
	</entity></fetch>`)
	layoutPath := writeTemp(t, "layout.xml",
		`<grid name="resultset" jump="name"><row name="result" id="accountid"><cell name="name" width="300"/></row></grid>`)

	out, _, err := runCLI(t, "columns", "--merge", layoutPath, queryPath)
	require.NoError(t, err)

	// The resized column keeps its width; the new column is appended.
	assert.Contains(t, out, `<cell name="name" width="300" />`)
	assert.Contains(t, out, `<cell name="revenue" width="100" />`)
}

func TestColumns_InvalidMergeLayout(t *testing.T) {
	queryPath := writeTemp(t, "query.xml", validDoc)
	layoutPath := writeTemp(t, "layout.xml", "<savedquery/>")

	_, _, err := runCLI(t, "columns", "--merge", layoutPath, queryPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
