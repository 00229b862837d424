package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/vsgen/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestCache(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	assert.True(t, c.Changed("a.py", []byte("x")))
	assert.False(t, c.Changed("a.py", []byte("x")))
	assert.True(t, c.Changed("a.py", []byte("y")))

	c.Forget("a.py")
	assert.True(t, c.Changed("a.py", []byte("y")))

	assert.True(t, c.Changed("b.py", []byte("1")))
	assert.True(t, c.Changed("c.py", []byte("1")))
	assert.True(t, c.Changed("a.py", []byte("y")), "least recently used entry was evicted")

	_, err = NewCache(0)
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	other := t.TempDir()
	graphFile := filepath.Join(other, "graph.json")
	require.NoError(t, os.WriteFile(graphFile, []byte("{}"), 0o644))

	w, err := New([]string{dir, graphFile, filepath.Join(dir, "missing")}, ".hcl", ".json")
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.relevant(filepath.Join(dir, "kinds.hcl")))
	assert.True(t, w.relevant(filepath.Join(nested, "more.hcl")))
	assert.False(t, w.relevant(filepath.Join(dir, "out.py")))
	assert.True(t, w.relevant(graphFile))
	assert.False(t, w.relevant(filepath.Join(other, "sibling.json")), "only the named file of a file root counts")
}

func TestRun_DeliversDebouncedChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, ".hcl")
	require.NoError(t, err)
	defer w.Close()
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(testContext())
	defer cancel()

	got := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			got <- changed
			return nil
		})
	}()

	target := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("a"), 0o644))

	select {
	case changed := <-got:
		assert.Equal(t, []string{target}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
