package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndReadBack(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save("dinner.jpg", []byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-jpeg-bytes"), data)
}

func TestLocalStore_UniqueReferences(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("a.png", []byte("1"))
	require.NoError(t, err)
	second, err := store.Save("a.png", []byte("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"malware.exe", "notes.txt", "noext"} {
		_, err := store.Save(name, []byte("x"))
		assert.ErrorIs(t, err, ErrUnsupportedImageType, name)
	}
}

func TestLocalStore_ExtensionCaseInsensitive(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("PHOTO.JPG", []byte("x"))
	assert.NoError(t, err)
}
