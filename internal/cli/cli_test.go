package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/codegen"
)

func noEnv(string) (string, bool) { return "", false }

func mapEnv(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func graphFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "g.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`graph "g" {}`), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	path := graphFile(t)
	cfg, exit, err := ParseWithEnv([]string{path}, &bytes.Buffer{}, noEnv)
	require.NoError(t, err)
	assert.False(t, exit)

	assert.Equal(t, path, cfg.GraphPath)
	assert.Equal(t, filepath.Dir(path), cfg.OutDir)
	assert.Equal(t, "run", cfg.FunctionName)
	assert.Equal(t, codegen.ImportsAll, cfg.ImportScope)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Check)
	assert.False(t, cfg.Watch)
}

func TestParse_Flags(t *testing.T) {
	path := graphFile(t)
	out := t.TempDir()
	cfg, _, err := ParseWithEnv([]string{
		"-modules-path", "kinds",
		"-entry", "start",
		"-module", "hello",
		"-out", out,
		"-func", "main",
		"-imports", "reachable",
		"-check",
		"-log-format", "JSON",
		"-log-level", "DEBUG",
		path,
	}, &bytes.Buffer{}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "kinds", cfg.ModulesPath)
	assert.Equal(t, "start", cfg.Entry)
	assert.Equal(t, "hello", cfg.ModuleName)
	assert.Equal(t, out, cfg.OutDir)
	assert.Equal(t, "main", cfg.FunctionName)
	assert.Equal(t, codegen.ImportsReachable, cfg.ImportScope)
	assert.True(t, cfg.Check)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_EnvDefaults(t *testing.T) {
	path := graphFile(t)
	env := mapEnv(map[string]string{
		"VSGEN_FUNC":             "entry",
		"VSGEN_IMPORTS":          "reachable",
		"VSGEN_LOG_LEVEL":        "warn",
		"VSGEN_HEALTHCHECK_PORT": "8081",
	})

	cfg, _, err := ParseWithEnv([]string{"-watch", path}, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "entry", cfg.FunctionName)
	assert.Equal(t, codegen.ImportsReachable, cfg.ImportScope)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 8081, cfg.HealthcheckPort)

	cfg, _, err = ParseWithEnv([]string{"-func", "flagwins", "-watch", path}, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "flagwins", cfg.FunctionName, "flags override the environment")
}

func TestParse_ExitCases(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := ParseWithEnv([]string{"-h"}, out, noEnv)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	_, exit, err = ParseWithEnv(nil, out, noEnv)
	require.NoError(t, err)
	assert.True(t, exit, "no graph path prints usage")
	assert.Contains(t, out.String(), "GRAPH_PATH")

	cfg, exit, err = ParseWithEnv([]string{"-list-kinds"}, out, noEnv)
	require.NoError(t, err)
	assert.False(t, exit)
	assert.True(t, cfg.ListKinds)
}

func TestParse_Errors(t *testing.T) {
	path := graphFile(t)
	testCases := []struct {
		name    string
		args    []string
		env     LookupFunc
		errText string
	}{
		{name: "unknown flag", args: []string{"-nope", path}, errText: "flag provided but not defined"},
		{name: "bad log format", args: []string{"-log-format", "xml", path}, errText: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", path}, errText: "invalid log-level"},
		{name: "bad imports", args: []string{"-imports", "some", path}, errText: "invalid imports"},
		{name: "two paths", args: []string{path, path}, errText: "expected one graph path"},
		{name: "missing graph", args: []string{filepath.Join(t.TempDir(), "none.hcl")}, errText: "graph path"},
		{
			name:    "bad port in env",
			args:    []string{path},
			env:     mapEnv(map[string]string{"VSGEN_HEALTHCHECK_PORT": "eighty"}),
			errText: "VSGEN_HEALTHCHECK_PORT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.env
			if env == nil {
				env = noEnv
			}
			_, _, err := ParseWithEnv(tc.args, &bytes.Buffer{}, env)
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errText)
		})
	}
}

func TestEnvLookup(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VSGEN_TEST_FROM_FILE=file\nVSGEN_TEST_BOTH=file\n"), 0o644))
	t.Setenv("VSGEN_TEST_BOTH", "process")

	lookup, err := EnvLookup(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	v, ok := lookup("VSGEN_TEST_FROM_FILE")
	assert.True(t, ok)
	assert.Equal(t, "file", v)

	v, _ = lookup("VSGEN_TEST_BOTH")
	assert.Equal(t, "process", v, "the process environment wins")

	_, ok = lookup("VSGEN_TEST_UNSET")
	assert.False(t, ok)
}
