package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkpress/internal/errors"
)

// makeFileHeader builds a real multipart.FileHeader carrying size bytes.
func makeFileHeader(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte("x"), size)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSave_PreservesExtension(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(makeFileHeader(t, "sunset.png", 100), 1000)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	assert.NoError(t, err)
	assert.Len(t, data, 100)
}

func TestSave_UniqueNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Save(makeFileHeader(t, "pic.jpg", 10), 1000)
	assert.NoError(t, err)
	second, err := store.Save(makeFileHeader(t, "pic.jpg", 10), 1000)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSave_TooLarge(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	_, err = store.Save(makeFileHeader(t, "big.jpg", 2001), 2000)
	assert.ErrorIs(t, err, errors.ErrFileTooLarge)

	// Nothing may reach disk on rejection.
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_NilFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Save(nil, 1000)
	assert.ErrorIs(t, err, errors.ErrFileRequired)
}

func TestRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	name, err := store.Save(makeFileHeader(t, "gone.gif", 10), 1000)
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(name))
	_, statErr := os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemove_MissingAndExternal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	// Already-gone files and external URLs are both no-ops.
	assert.NoError(t, store.Remove("no-such-file.png"))
	assert.NoError(t, store.Remove("https://example.com/avatar.png"))
	assert.NoError(t, store.Remove(""))
}
