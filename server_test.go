package pubkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServerServesOutput(t *testing.T) {
	b := testBuilder(t, siteContent())
	s := NewServer(b)
	require.NoError(t, s.Rebuild(context.Background()))

	rec := serve(s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "home:skip-links")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = serve(s, "/articles/alt-text/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "article:alt-text")

	rec = serve(s, "/rss.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerNotFoundPage(t *testing.T) {
	b := testBuilder(t, siteContent())
	s := NewServer(b)
	require.NoError(t, s.Rebuild(context.Background()))

	rec := serve(s, "/no/such/page/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
}

func TestServerRebuildFailureKeepsOutput(t *testing.T) {
	fsys := siteContent()
	b := testBuilder(t, fsys)
	s := NewServer(b)
	require.NoError(t, s.Rebuild(context.Background()))

	fsys["articles/broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: 1\n---\n")}
	assert.Error(t, s.Rebuild(context.Background()))

	rec := serve(s, "/articles/alt-text/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServerEnablesCache(t *testing.T) {
	b := testBuilder(t, siteContent())
	NewServer(b)
	require.NotNil(t, b.cache)
	_, err := b.Published()
	require.NoError(t, err)
	assert.Equal(t, 4, b.cache.Len())
}

func TestWatchTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "articles", "2024"), 0o755))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, watchTree(w, root))
	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "articles"),
		filepath.Join(root, "articles", "2024"),
	}, w.WatchList())
}

func TestWatchRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "articles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "articles", "first.md"),
		articleSource("First", "2024-01-01", false), 0o644))

	cfg := SiteConfig{
		ContentDir: content,
		StaticDir:  filepath.Join(root, "public"),
		OutputDir:  filepath.Join(root, "dist"),
	}
	s := NewServer(New(cfg, stubViews()))
	require.NoError(t, s.Rebuild(context.Background()))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, watchTree(w, content))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.watch(ctx, w)

	require.NoError(t, os.WriteFile(filepath.Join(content, "articles", "second.md"),
		articleSource("Second", "2024-02-01", false), 0o644))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, "articles", "second", "index.html"))
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	// Wait for the in-flight build before the temp dir is removed.
	cancel()
	s.buildMu.Lock()
	s.buildMu.Unlock()
}
