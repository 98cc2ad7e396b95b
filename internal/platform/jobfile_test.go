package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists", "links.txt")
	text := "# my links\nhttps://a.test/1\n\nhttps://a.test/2\n"

	require.NoError(t, WriteJobFile(path, text))

	got, err := ReadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, got, "job file is written verbatim")
}

func TestReadJobFile_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFhttps://a.test/ü\n"), 0o644))

	got, err := ReadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://a.test/ü\n", got)
}

func TestReadJobFile_Missing(t *testing.T) {
	_, err := ReadJobFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
