package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
version: "1"
schemas:
  - package: example.com/demo
    type: Response
    dir: %DIR%
    properties:
      - name: id
        type: int64
        tags: 'json:"id"'
      - name: name
        type: string
`

func writeConfig(t *testing.T) (cfgPath, pkgDir string) {
	t.Helper()

	root := t.TempDir()
	pkgDir = filepath.Join(root, "demo")
	cfgPath = filepath.Join(root, "autojson.yaml")

	data := bytes.ReplaceAll([]byte(testConfig), []byte("%DIR%"), []byte(pkgDir))
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	return cfgPath, pkgDir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestGenAndCheck(t *testing.T) {
	cfgPath, pkgDir := writeConfig(t)

	out, _, err := run(t, "gen", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   example.com/demo.Response (2 files)")

	assert.FileExists(t, filepath.Join(pkgDir, "response_builder.go"))
	assert.FileExists(t, filepath.Join(pkgDir, "response_decoder.go"))

	out, _, err = run(t, "check", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	stale := filepath.Join(pkgDir, "response_decoder.go")
	require.NoError(t, os.WriteFile(stale, []byte("package demo\n"), 0o644))

	_, errOut, err := run(t, "check", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, errOut, "response_decoder.go")
}

func TestGen_OutDirOverride(t *testing.T) {
	cfgPath, pkgDir := writeConfig(t)
	outDir := filepath.Join(t.TempDir(), "gen")

	_, _, err := run(t, "gen", "--config", cfgPath, "--out", outDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "response_builder.go"))
	assert.NoFileExists(t, filepath.Join(pkgDir, "response_builder.go"))
}

func TestAnalyze_PrintsYAML(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, _, err := run(t, "analyze", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "type: Response")
	assert.Contains(t, out, "package: example.com/demo")
	assert.Contains(t, out, `json:"id"`)
}

func TestAnalyze_Dump(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	out, _, err := run(t, "analyze", "--dump", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "SimpleName: (string) (len=8) \"Response\"")
}

func TestNothingToDo(t *testing.T) {
	_, _, err := run(t, "gen")
	require.Error(t, err)
}

func TestWatchIgnore(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	s, err := newSession(&options{configPath: cfgPath}, nil)
	require.NoError(t, err)

	ignore := s.watchIgnore()
	assert.True(t, ignore("/x/response_builder.go"))
	assert.True(t, ignore("/x/response_decoder.go"))
	assert.True(t, ignore("/x/response_builder.unformatted.go"))
	assert.True(t, ignore("/x/response_decoder.unformatted.go"))
	assert.False(t, ignore("/x/response.go"))
	assert.False(t, ignore("/x/autojson.yaml"))
}
