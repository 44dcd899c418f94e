package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskMediaStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskMediaStore(root)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "users/ana/icon.png", strings.NewReader("png-bytes")))

	data, err := os.ReadFile(filepath.Join(root, "users", "ana", "icon.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "users/ana/icon.png"))
	_, err = os.Stat(filepath.Join(root, "users", "ana", "icon.png"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Delete(ctx, "users/ana/icon.png"))
}

func TestDiskMediaStore_RejectsPathsOutsideRoot(t *testing.T) {
	store := NewDiskMediaStore(t.TempDir())

	for _, path := range []string{"", "../escape.png", "/etc/passwd", "users/../../x.png"} {
		err := store.Save(context.Background(), path, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidMediaPath, path)
	}
}
