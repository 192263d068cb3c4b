package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestResolve_Directory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.txt"), "bb")
	touch(t, filepath.Join(root, "a.TXT"), "a")
	touch(t, filepath.Join(root, "notes.md"), "x")
	touch(t, filepath.Join(root, "sub", "c.txt"), "ccc")
	touch(t, filepath.Join(root, ".hidden", "d.txt"), "d")

	files, err := Resolve([]string{root})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		rel, _ := filepath.Rel(root, f.Path)
		names = append(names, rel)
	}
	assert.Equal(t, []string{"a.TXT", "b.txt", filepath.Join("sub", "c.txt")}, names)
	assert.Equal(t, int64(2), files[1].Size)
	assert.NotZero(t, files[0].Mtime)
}

func TestResolve_FileAndDuplicates(t *testing.T) {
	root := t.TempDir()
	chat := filepath.Join(root, "chat.log")
	touch(t, chat, "hola")

	files, err := Resolve([]string{chat, chat})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, chat, files[0].Path)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve([]string{filepath.Join(t.TempDir(), "nope.txt")})
	assert.True(t, os.IsNotExist(err))
}
