package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/codegen"
)

const helloGraph = `
graph "Hello World" {
  node "start" {
    kind = "exec_start"
  }
  node "greet" {
    kind       = "print"
    properties = { value = "hello" }
  }
  connect {
    from = "start.exec"
    to   = "greet.exec"
  }
}
`

const helloModule = `import builtins

def run():
    builtins.print("hello")
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestRun_WritesModule(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "hello.hcl", helloGraph)

	a, _, logs := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath}))
	require.NoError(t, a.Run(context.Background()))

	src, err := os.ReadFile(filepath.Join(dir, "HelloWorld.py"))
	require.NoError(t, err)
	assert.Equal(t, helloModule, string(src))
	assert.Contains(t, logs.String(), "Module written.")
}

func TestRun_Options(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	graphPath := writeFile(t, dir, "hello.hcl", helloGraph)

	a, _, _ := SetupAppTest(t, newTestConfig(t, Config{
		GraphPath:    graphPath,
		OutDir:       out,
		ModuleName:   "greeter",
		FunctionName: "main",
		ImportScope:  codegen.ImportsReachable,
	}))
	require.NoError(t, a.Run(context.Background()))

	src, err := os.ReadFile(filepath.Join(out, "greeter.py"))
	require.NoError(t, err)
	assert.Equal(t, "import builtins\n\ndef main():\n    builtins.print(\"hello\")\n", string(src))
}

func TestRun_Session(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "graphs/hello.json", `{
  "graph": {"name": "Hello World"},
  "nodes": [
    {"id": "start", "kind": "exec_start"},
    {"id": "greet", "kind": "print", "properties": {"value": "hello"}}
  ],
  "connections": [{"from": "start.exec", "to": "greet.exec"}]
}`)

	a, _, _ := SetupAppTest(t, newTestConfig(t, Config{GraphPath: filepath.Dir(graphPath)}))
	require.NoError(t, a.Run(context.Background()))

	src, err := os.ReadFile(filepath.Join(dir, "graphs", "HelloWorld.py"))
	require.NoError(t, err)
	assert.Equal(t, helloModule, string(src))
}

func TestRun_UserManifests(t *testing.T) {
	dir := t.TempDir()
	modules := writeFile(t, dir, "kinds/shout.hcl", `
node_kind "shout" {
  category = "Custom"
  inline   = "${text}.upper()"
  input "text" { default = "" }
  output "result" {}
}
`)
	graphPath := writeFile(t, dir, "graph/shout.hcl", `
graph "Shout" {
  node "start" {
    kind = "exec_start"
  }
  node "loud" {
    kind       = "shout"
    properties = { text = "hi" }
  }
  node "show" {
    kind = "print"
  }
  connect {
    from = "start.exec"
    to   = "show.exec"
  }
  connect {
    from = "loud.result"
    to   = "show.value"
  }
}
`)

	a, _, _ := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath, ModulesPath: filepath.Dir(modules)}))
	require.NoError(t, a.Run(context.Background()))

	src, err := os.ReadFile(filepath.Join(dir, "graph", "Shout.py"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "    builtins.print(\"hi\".upper())\n")
}

func TestRun_Check(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "hello.hcl", helloGraph)

	a, _, logs := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath, Check: true}))
	require.NoError(t, a.Run(context.Background()))

	_, err := os.Stat(filepath.Join(dir, "HelloWorld.py"))
	assert.ErrorIs(t, err, os.ErrNotExist, "check mode never writes")
	assert.Contains(t, logs.String(), "Check passed.")
}

func TestRun_CheckDetectsUnreachableCycle(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "cycle.hcl", `
graph "Cycle" {
  node "start" {
    kind = "exec_start"
  }
  node "a" {
    kind = "add"
  }
  node "b" {
    kind = "add"
  }
  connect {
    from = "a.result"
    to   = "b.lhs"
  }
  connect {
    from = "b.result"
    to   = "a.lhs"
  }
}
`)
	a, _, _ := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath, Check: true}))
	err := a.Run(context.Background())
	assert.ErrorIs(t, err, codegen.ErrCyclicDataDependency)
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		graph string
		cfg   Config
		errIs error
	}{
		{
			name:  "missing entry",
			graph: `graph "No Entry" {}`,
			errIs: codegen.ErrMissingEntryPoint,
		},
		{
			name:  "invalid module name",
			graph: helloGraph,
			cfg:   Config{ModuleName: "not-valid"},
			errIs: codegen.ErrInvalidName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := tc.cfg
			cfg.GraphPath = writeFile(t, dir, "g.hcl", tc.graph)
			a, _, _ := SetupAppTest(t, newTestConfig(t, cfg))
			err := a.Run(context.Background())
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRun_ListKinds(t *testing.T) {
	a, out, _ := SetupAppTest(t, newTestConfig(t, Config{ListKinds: true}))
	require.NoError(t, a.Run(context.Background()))

	listing := out.String()
	assert.Contains(t, listing, "CATEGORY")
	assert.Regexp(t, `Flow\s+exec_start\s+executable`, listing)
	assert.Regexp(t, `Table\s+csv_rows\s+custom_code`, listing)
	assert.Regexp(t, `Filesystem\s+walk_files\s+custom_code`, listing)
}

func TestNewConfig(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "g.hcl", helloGraph)

	cfg, err := NewConfig(Config{GraphPath: graphPath})
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.OutDir)
	assert.Equal(t, "run", cfg.FunctionName)

	cfg, err = NewConfig(Config{GraphPath: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.OutDir)

	for name, bad := range map[string]Config{
		"no graph":          {},
		"missing graph":     {GraphPath: filepath.Join(dir, "nope.hcl")},
		"bad notify url":    {GraphPath: graphPath, NotifyURL: "ftp://x"},
		"check and watch":   {GraphPath: graphPath, Check: true, Watch: true},
		"health sans watch": {GraphPath: graphPath, HealthcheckPort: 8080},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfig(bad)
			assert.Error(t, err)
		})
	}
}

func TestModuleNameFor(t *testing.T) {
	assert.Equal(t, "HelloWorld", ModuleNameFor("Hello World"))
	assert.Equal(t, "plain", ModuleNameFor("plain"))
}

func TestWatchCacheSkipsUnchangedOutput(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "hello.hcl", helloGraph)

	a, _, logs := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath, Watch: true}))
	require.NotNil(t, a.cache)

	require.NoError(t, a.Build(a.ctx))
	require.NoError(t, a.Build(a.ctx))
	assert.Contains(t, logs.String(), "Module unchanged, skipping write.")
}

func TestHealthHandler(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "hello.hcl", helloGraph)
	a, _, _ := SetupAppTest(t, newTestConfig(t, Config{GraphPath: graphPath, Watch: true}))

	serve := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec
	}

	assert.Equal(t, http.StatusServiceUnavailable, serve().Code)

	a.setStatus(nil)
	rec := serve()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")

	a.setStatus(codegen.ErrMissingEntryPoint)
	rec = serve()
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing entry")
}
