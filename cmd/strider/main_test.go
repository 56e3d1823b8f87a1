package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/strider/internal/config"
	"github.com/born-ml/strider/internal/logs"
	"github.com/born-ml/strider/internal/table"
)

const people = "#: name;city;age\nann;paris;31\nbob;rome;\ncid;paris;27\n"

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestVersionAndUsage(t *testing.T) {
	out, _, code := runCmd(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "strider "+version+"\n", out)

	_, errOut, code := runCmd(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Commands:")
	assert.Contains(t, errOut, "encode")

	_, errOut, code = runCmd(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)
}

func TestInfo(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out, _, code := runCmd(t, "info", "-t", path, "-type", "age=numeric")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "rows:    3\n")
	assert.Contains(t, out, "columns: 3\n")
	assert.Regexp(t, `2  age\s+numeric`, out)
	assert.Regexp(t, `0  name\s+auto`, out)
}

func TestHead(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out, _, code := runCmd(t, "head", "-t", path, "-n", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "#: name;city;age\nann;paris;31\nbob;rome;\n", out)

	lazyOut, _, code := runCmd(t, "head", "-t", path, "-n", "2", "-lazy")
	require.Equal(t, 0, code)
	assert.Equal(t, out, lazyOut)
}

func TestCell(t *testing.T) {
	path := writeFile(t, "people.txt", people)

	out, _, code := runCmd(t, "cell", "-t", path, "2", "city")
	require.Equal(t, 0, code)
	assert.Equal(t, "paris\n", out)

	out, _, code = runCmd(t, "cell", "-t", path, "-value", "1", "city")
	require.Equal(t, 0, code)
	assert.Equal(t, "-2\n", out)

	out, _, code = runCmd(t, "cell", "-t", path, "-value", "1", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "NaN\n", out)

	_, errOut, code := runCmd(t, "cell", "-t", path, "5", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "row 5 out of range [0, 3)")

	_, errOut, code = runCmd(t, "cell", "-t", path, "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "expected <row> <column>")
}

func TestMap(t *testing.T) {
	path := writeFile(t, "people.txt", people)

	out, _, code := runCmd(t, "map", "-t", path, "city", "rome", "oslo", "paris")
	require.Equal(t, 0, code)
	assert.Equal(t, "rome\t-2\noslo\t-3\nparis\t-1\n", out)

	_, errOut, code := runCmd(t, "map", "-t", path, "-strict", "city", "oslo")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "string has no code")

	out, _, code = runCmd(t, "map", "-t", path, "-type", "name=tokens", "-tokenizer", "words", "name", "bob ann zed")
	require.Equal(t, 0, code)
	assert.Equal(t, "bob ann zed\t1 0 3\n", out)
}

func TestCodes(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out, _, code := runCmd(t, "codes", "-t", path, "-lazy", "city")
	require.Equal(t, 0, code)
	assert.Equal(t, "-1\tparis\n-2\trome\n", out)
}

func TestEncode(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out, _, code := runCmd(t, "encode", "-t", path, "-cols", "city, age")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "-2")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "27")

	_, errOut, code := runCmd(t, "encode", "-t", path, "-type", "name=tokens", "-tokenizer", "words")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "holds tokens")
}

func TestSaveAndDump(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out := filepath.Join(t.TempDir(), "people.strd")

	_, errOut, code := runCmd(t, "save", "-t", path, "-cols", "city,age")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "use -o")

	_, errOut, code = runCmd(t, "save", "-t", path, "-cols", "city,age", "-o", out)
	require.Equal(t, 0, code, errOut)

	dump, errOut, code := runCmd(t, "dump", out)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, dump, "shape:   3 x 2 float64\n")
	assert.Contains(t, dump, "meta:    source="+path+"\n")
	assert.Contains(t, dump, "city\tage\n-1\t31\n-2\tNaN\n-1\t27\n")

	dump, _, code = runCmd(t, "dump", "-n", "1", out)
	require.Equal(t, 0, code)
	assert.Contains(t, dump, "city\tage\n-1\t31\n")
	assert.NotContains(t, dump, "NaN")

	dump, errOut, code = runCmd(t, "dump", "-stats", "-workers", "2", out)
	require.Equal(t, 0, code, errOut)
	assert.Regexp(t, `0\s+city\s+3\s+0\s+-2\s+-1\s`, dump)
	assert.Regexp(t, `1\s+age\s+2\s+1\s+27\s+31\s+29\s`, dump)

	_, errOut, code = runCmd(t, "dump", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "strider dump: ")
}

func TestStats(t *testing.T) {
	path := writeFile(t, "people.txt", people)
	out, errOut, code := runCmd(t, "stats", "-t", path, "-workers", "3")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "stddev")
	assert.Regexp(t, `0\s+name\s+3\s+0\s+-3\s+-1\s+-2\s`, out)
	assert.Regexp(t, `2\s+age\s+2\s+1\s+27\s+31\s+29\s`, out)

	seq, _, code := runCmd(t, "stats", "-t", path, "-workers", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, out, seq)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "people.csv", "#: name,city\nann,paris\nbob;x,y\n")
	cfg := writeFile(t, "strider.cue", `table: {path: "`+filepath.ToSlash(path)+`", delimiter: ","}
log: level: "debug"`)

	out, errOut, code := runCmd(t, "head", "-config", cfg)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "#: name,city\nann,paris\nbob;x,y\n", out)
	assert.Contains(t, errOut, "loaded table", "debug logs go to stderr")

	_, errOut, code = runCmd(t, "head", "-config", cfg, "-d", ";")
	require.Equal(t, 1, code, "the flag overrides the file")
	assert.Contains(t, errOut, "expected 1 fields, got 2")
}

func TestMissingTable(t *testing.T) {
	_, errOut, code := runCmd(t, "info")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no table given")
}

func TestShell(t *testing.T) {
	st, err := table.LoadStringTable(writeFile(t, "people.txt", people), table.DefaultTextOptions())
	require.NoError(t, err)
	logger, err := logs.New(logs.Options{Writer: new(bytes.Buffer)})
	require.NoError(t, err)

	var out bytes.Buffer
	sh := &shell{e: &env{stdout: &out, cfg: config.Default(), logger: logger}, t: st}

	require.NoError(t, sh.exec("row 1"))
	require.NoError(t, sh.exec("cell 0 name"))
	require.NoError(t, sh.exec("map city lisbon"))
	require.NoError(t, sh.exec("code city lisbon"))
	require.NoError(t, sh.exec(""))
	assert.Equal(t, "bob;rome;\nann\n-1\n-1\n", out.String())

	assert.Error(t, sh.exec("code city paris"))
	assert.Error(t, sh.exec("row x"))
	assert.Error(t, sh.exec("dance"))
	assert.ErrorIs(t, sh.exec("quit"), errQuit)
}
