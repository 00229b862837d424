// Package testutil provides the harness used by the end-to-end tests: it lays out
// graph and manifest files in a temporary directory, runs the application on them
// and reads back the generated module.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/app"
	"github.com/vk/vsgen/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Module is the generated source, empty if nothing was written.
	Module string
	// OutDir is where the module would be written.
	OutDir string
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithConfig(context.Background(), t, files, app.Config{}, modules...)
}

// RunIntegrationTestWithConfig runs the application on files laid out below a
// temporary root. Graphs go under "graph/" and manifests under "modules/"; GraphPath,
// ModulesPath and OutDir of cfg are set by the harness. Without modules the built-in
// ones are used.
func RunIntegrationTestWithConfig(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	graphDir := filepath.Join(tmpDir, "graph")
	modulesDir := filepath.Join(tmpDir, "modules")
	outDir := filepath.Join(tmpDir, "out")
	for _, dir := range []string{graphDir, modulesDir, outDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	WriteFiles(t, tmpDir, files)

	cfg.GraphPath = graphDir
	cfg.ModulesPath = modulesDir
	cfg.OutDir = outDir
	cfg.LogLevel = "debug"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	testApp, err := app.NewApp(&app.SafeBuffer{}, logBuffer, appConfig, modules...)
	result := &HarnessResult{App: testApp, OutDir: outDir}
	if err == nil {
		err = testApp.Run(ctx)
	}
	result.Err = err
	result.LogOutput = logBuffer.String()

	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".py" {
			src, readErr := os.ReadFile(filepath.Join(outDir, e.Name()))
			require.NoError(t, readErr)
			result.Module = string(src)
		}
	}

	t.Cleanup(func() {
		if os.Getenv("VSGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	})
	return result
}

// WriteFiles writes files, keyed by slash-separated relative path, below root.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
}
