package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gi8lino/templator/internal/exitcode"
	"github.com/gi8lino/templator/internal/pathmap"
	"github.com/gi8lino/templator/internal/vars"
)

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Stdout(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "host: $HOST\n")

	var stdout, stderr bytes.Buffer
	err := Run(vars.Map{"HOST": "example.com"}, Options{
		Inputs: []string{tpl},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, "host: example.com\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_StdoutConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeTemplate(t, dir, "first.tpl", "one\n")
	second := writeTemplate(t, dir, "second.tpl", "two\n")

	var stdout bytes.Buffer
	err := Run(vars.Map{}, Options{
		Inputs: []string{first, second},
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", stdout.String())
}

func TestRun_RoundTripStability(t *testing.T) {
	dir := t.TempDir()
	content := "no placeholders\n\ttabs kept\nno trailing newline"
	tpl := writeTemplate(t, dir, "plain.tpl", content)
	out := filepath.Join(t.TempDir(), "plain.out")

	err := Run(vars.Map{"HOST": "x"}, Options{
		Inputs: []string{tpl},
		Output: out,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, content, string(got), "output must be byte-identical to the input")
}

func TestRun_WriteToDirectory(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	writeTemplate(t, dir, "templates/a.tpl", "v=$V\n")
	writeTemplate(t, dir, "templates/sub/b.tpl", "w=$V\n")

	err := Run(vars.Map{"V": "1"}, Options{
		Inputs:    []string{filepath.Join(dir, "templates") + "/"},
		Output:    outDir,
		Recursive: true,
	})
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(outDir, "a.tpl"))
	require.NoError(t, err)
	assert.Equal(t, "v=1\n", string(a))

	b, err := os.ReadFile(filepath.Join(outDir, "sub", "b.tpl"))
	require.NoError(t, err)
	assert.Equal(t, "w=1\n", string(b))
}

func TestRun_RefusesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "new content")
	out := filepath.Join(t.TempDir(), "a.out")
	require.NoError(t, os.WriteFile(out, []byte("original"), 0o644))

	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Output: out})
	require.Error(t, err)
	assert.Equal(t, exitcode.Output, exitcode.Of(err))

	got, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "original", string(got), "existing file must be left untouched")
}

func TestRun_Append(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "appended")
	out := filepath.Join(t.TempDir(), "a.out")
	require.NoError(t, os.WriteFile(out, []byte("original\n"), 0o644))

	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Output: out, Append: true})
	require.NoError(t, err)

	got, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "original\nappended", string(got))
}

func TestRun_Force(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "replaced")
	out := filepath.Join(t.TempDir(), "a.out")
	require.NoError(t, os.WriteFile(out, []byte("original"), 0o644))

	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Output: out, Force: true})
	require.NoError(t, err)

	got, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "replaced", string(got))
}

func TestRun_ConcatenatesIntoSingleFile(t *testing.T) {
	dir := t.TempDir()
	first := writeTemplate(t, dir, "first.tpl", "one\n")
	second := writeTemplate(t, dir, "second.tpl", "two\n")
	out := filepath.Join(t.TempDir(), "combined.txt")

	err := Run(vars.Map{}, Options{Inputs: []string{first, second}, Output: out})
	require.NoError(t, err)

	got, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "one\ntwo\n", string(got), "templates concatenate in supply order")
}

func TestRun_StrictUnresolved(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "$missing\n")

	var stdout bytes.Buffer
	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Strict: true, Stdout: &stdout})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	assert.Equal(t, exitcode.Resolve, exitcode.Of(err))
}

func TestRun_NonStrictLeavesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "$missing\n")

	var stdout bytes.Buffer
	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Stdout: &stdout})
	require.NoError(t, err)
	assert.Equal(t, "$missing\n", stdout.String())
}

func TestRun_FailureDoesNotAbortSiblings(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a_bad.tpl", "$missing\n")
	writeTemplate(t, dir, "b_good.tpl", "v=$V\n")
	outDir := t.TempDir()

	err := Run(vars.Map{"V": "1"}, Options{
		Inputs: []string{dir + string(filepath.Separator)},
		Output: outDir,
		Strict: true,
	})
	require.Error(t, err, "the strict failure must surface at the end")
	assert.Equal(t, exitcode.Resolve, exitcode.Of(err))

	got, readErr := os.ReadFile(filepath.Join(outDir, "b_good.tpl"))
	require.NoError(t, readErr, "sibling templates must still be processed")
	assert.Equal(t, "v=1\n", string(got))
}

func TestRun_ExcludedNeverWritten(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "keep.tpl", "k\n")
	writeTemplate(t, dir, "skip.bak", "s\n")
	outDir := t.TempDir()

	err := Run(vars.Map{}, Options{
		Inputs:   []string{dir + string(filepath.Separator)},
		Output:   outDir,
		Excludes: []string{".bak"},
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(outDir, "skip.bak"))
	assert.True(t, os.IsNotExist(statErr), "excluded file must never be written")
	_, statErr = os.Stat(filepath.Join(outDir, "keep.tpl"))
	assert.NoError(t, statErr)
}

func TestRun_SourceEqualsDestination(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.out", "content")

	err := Run(vars.Map{}, Options{Inputs: []string{tpl}, Output: tpl, Force: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be equal")
}

func TestRun_ShowDiff(t *testing.T) {
	dir := t.TempDir()
	tpl := writeTemplate(t, dir, "a.tpl", "host: $HOST\nstatic\n")

	var stdout, stderr bytes.Buffer
	err := Run(vars.Map{"HOST": "example.com"}, Options{
		Inputs:   []string{tpl},
		ShowDiff: true,
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "host: $HOST")
	assert.Contains(t, stderr.String(), "host: example.com")
	assert.NotContains(t, stdout.String(), "host: $HOST", "diff lines must not pollute stdout")
}

func TestRun_MissingInput(t *testing.T) {
	err := Run(vars.Map{}, Options{Inputs: []string{filepath.Join(t.TempDir(), "nope.tpl")}})
	require.Error(t, err)
	assert.Equal(t, exitcode.Usage, exitcode.Of(err))
}

func TestClassifyPlanError(t *testing.T) {
	walkErr := &pathmap.WalkError{Dir: "templates/sub", Err: errors.New("permission denied")}
	assert.Equal(t, exitcode.Generic, exitcode.Of(classifyPlanError(walkErr)),
		"an unreadable directory is an I/O failure, not a usage error")

	argErr := errors.New(`"missing.tpl" not found`)
	assert.Equal(t, exitcode.Usage, exitcode.Of(classifyPlanError(argErr)))
}
