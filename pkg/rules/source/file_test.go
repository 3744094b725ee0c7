package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func docNames(docs []Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}

func TestFileSourceOrdersByRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "rules: []")
	writeFile(t, dir, "a.yml", "rules: []")
	writeFile(t, dir, "eddf/sid.yaml", "rules: []")
	writeFile(t, dir, "eddf/a.YAML", "rules: []")
	writeFile(t, dir, "README.md", "# rules")
	writeFile(t, dir, ".hidden.yaml", "rules: []")
	writeFile(t, dir, ".git/config.yaml", "rules: []")

	docs, err := NewFileSource(dir, FileOptions{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yml", "b.yaml", "eddf/a.YAML", "eddf/sid.yaml"}, docNames(docs))
	assert.Equal(t, "rules: []", string(docs[0].Data))
	assert.Equal(t, filepath.Join(dir, "a.yml"), docs[0].Path)
}

func TestFileSourceCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "rules: []")
	writeFile(t, dir, "b.rules", "rules: []")

	src := NewFileSource(dir, FileOptions{Extensions: []string{".rules"}})
	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b.rules"}, docNames(docs))
	assert.True(t, src.Matches("x/y.RULES"))
	assert.False(t, src.Matches("x/y.yaml"))
}

func TestFileSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "only.yaml", "rules: []")

	docs, err := NewFileSource(path, FileOptions{}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "only.yaml", docs[0].Name)
}

func TestFileSourceMissingPath(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope"), FileOptions{}).Load(context.Background())
	assert.Error(t, err)
}

func TestFileSourceCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "rules: []")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource(dir, FileOptions{}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSourceString(t *testing.T) {
	assert.Equal(t, "file:rules", NewFileSource("rules", FileOptions{}).String())
}

func TestMemorySource(t *testing.T) {
	src := NewMemorySource(Document{Name: "b"}, Document{Name: "a"})

	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, docNames(docs))

	docs[0].Name = "changed"
	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", again[0].Name)

	src.Set(Document{Name: "c"})
	docs, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, docNames(docs))
	assert.Equal(t, "memory", src.String())
}
