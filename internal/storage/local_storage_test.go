package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenRemove(t *testing.T) {
	root := t.TempDir()
	st, err := NewLocalStorage(root)
	require.NoError(t, err)

	ctx := context.Background()
	name, err := NewName(".pdf")
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, name, bytes.NewReader([]byte("hello")), 5, "application/pdf"))

	rc, err := st.Open(ctx, name)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	objects, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, name, objects[0].Name)
	assert.False(t, objects[0].ModTime.IsZero())

	require.NoError(t, st.Remove(ctx, name))
	_, err = os.Stat(filepath.Join(root, name))
	assert.True(t, os.IsNotExist(err))

	_, err = st.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RemoveMissingIsNotAnError(t *testing.T) {
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, st.Remove(context.Background(), "0123456789abcdef.png"))
}

func TestLocalStorage_SaveRefusesOverwrite(t *testing.T) {
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "a.png", bytes.NewReader([]byte("1")), 1, "image/png"))
	assert.Error(t, st.Save(ctx, "a.png", bytes.NewReader([]byte("2")), 1, "image/png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	st, err := NewLocalStorage(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"", ".", "..", "../escape.txt", "a/b.png", `a\b.png`, ".hidden"} {
		err := st.Save(ctx, name, bytes.NewReader(nil), 0, "image/png")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}

	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewName_IsRandomHex(t *testing.T) {
	a, err := NewName(".png")
	require.NoError(t, err)
	b, err := NewName(".png")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32+len(".png"))
	assert.NoError(t, ValidateName(a))
}
