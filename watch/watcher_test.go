package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeartee/kiro-steering-docs/document"
)

func TestNew_Defaults(t *testing.T) {
	w, err := New(Config{}, t.TempDir(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	assert.Equal(t, defaultDebounce, w.config.DebounceDelay)
	assert.True(t, w.excludes[".git"])
	assert.True(t, w.excludes["node_modules"])
	assert.True(t, w.excludes["vendor"])
}

func TestNew_CustomExcludes(t *testing.T) {
	w, err := New(Config{ExcludeDirs: []string{"build"}}, t.TempDir(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	assert.True(t, w.excludes["build"])
	assert.False(t, w.excludes["node_modules"])
}

func TestWatcher_EmitsEventOnWrite(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{DebounceDelay: 50 * time.Millisecond}, dir, nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: Test\n---\n# Body\n"), 0644))

	select {
	case event := <-w.Events():
		assert.Equal(t, "doc.md", event.Path)
		assert.Equal(t, OpCreate, event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestWatcher_HashSuppressesUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	content := []byte("---\ntitle: Test\n---\n# Body\n")

	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, content, 0644))

	w, err := New(Config{DebounceDelay: 50 * time.Millisecond}, dir, nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	// Seed the hash as the initial validation pass would.
	w.SetHash("doc.md", document.ContentHash(content))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// Rewrite identical content; no event should surface.
	require.NoError(t, os.WriteFile(path, content, 0644))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for unchanged content: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{DebounceDelay: 50 * time.Millisecond}, dir, nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain"), 0644))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for non-markdown file: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}
