package assets

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, root, rel string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("body{}"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestURLIncludesModificationTime(t *testing.T) {
	root := t.TempDir()
	mtime := time.Unix(1600000000, 0)
	writeAsset(t, root, "css/style.min.css", mtime)

	url, err := NewResolver(root).URL("css/style.min.css")
	require.NoError(t, err)
	assert.Equal(t, "/static/css/style.min.css?mtime=1600000000", url)
}

func TestURLIsStableUntilTouched(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "js/client.min.js", time.Unix(1600000000, 0))
	r := NewResolver(root)

	first, err := r.URL("js/client.min.js")
	require.NoError(t, err)
	second, err := r.URL("js/client.min.js")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	later := time.Unix(1700000000, 0)
	path := filepath.Join(root, "js", "client.min.js")
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := r.URL("js/client.min.js")
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Equal(t, "/static/js/client.min.js?mtime="+strconv.FormatInt(later.Unix(), 10), third)
}

func TestURLMissingAsset(t *testing.T) {
	_, err := NewResolver(t.TempDir()).URL("css/missing.css")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestURLRejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "favicon.32.png", time.Now())

	for _, p := range []string{"../favicon.32.png", "/etc/passwd", ""} {
		_, err := NewResolver(filepath.Join(root, "static")).URL(p)
		assert.ErrorIs(t, err, ErrResourceNotFound, p)
	}
}

func TestURLRejectsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "css"), 0o755))
	_, err := NewResolver(root).URL("css")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
