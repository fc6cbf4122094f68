package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	ref, err := store.Save("ord-1", "proof.jpg", strings.NewReader("image bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestDiskStoreStripsPathComponents(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root)

	ref, err := store.Save("ord-1", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, root))
	assert.True(t, strings.HasSuffix(ref, "passwd"))
}
