package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTrimsAndSkipsBlank(t *testing.T) {
	path := writeFile(t, "admin/\n  login \n\n\r\nbackup.zip\r\n   \n")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin/", "login", "backup.zip"}, got)
}

func TestLoadKeepsOrderAndDuplicates(t *testing.T) {
	path := writeFile(t, "b\na\nb\n#notacomment\n")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b", "#notacomment"}, got)
}

func TestLoadEmptyFile(t *testing.T) {
	got, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestLoadRereadsFile(t *testing.T) {
	path := writeFile(t, "one\n")
	first, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))
	second, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestLoadURLsAddsScheme(t *testing.T) {
	path := writeFile(t, "http://a.test\nhttps://b.test/app/\nc.test:8080\n\n")

	got, err := LoadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "https://b.test/app/", "http://c.test:8080"}, got)
}

func TestLoadURLsSchemeIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, "HTTPS://a.test\nHttp://b.test\nhttpsx.test\n")

	got, err := LoadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HTTPS://a.test", "Http://b.test", "http://httpsx.test"}, got)
}

func TestLoadURLsMissing(t *testing.T) {
	_, err := LoadURLs(filepath.Join(t.TempDir(), "urls.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}
