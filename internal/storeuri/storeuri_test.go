package storeuri

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/wordnet/store"
	"github.com/cours-de-latin/wordnet/store/minio"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, dir)
	require.NoError(t, err)
	require.IsType(t, &store.Local{}, st)
	assert.Equal(t, dir, st.(*store.Local).Root())

	st, err = Open(ctx, "file://"+dir)
	require.NoError(t, err)
	assert.Equal(t, dir, st.(*store.Local).Root())

	st, err = Open(ctx, "mem://")
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)

	st, err = Open(ctx, "minio://localhost:9000/lexicon/wordnet?secure=false")
	require.NoError(t, err)
	assert.IsType(t, &minio.Store{}, st)
}

func TestOpenCompressed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, "dir://"+dir+"?compression=lz4")
	require.NoError(t, err)
	require.IsType(t, &store.Compressed{}, st)
	require.NoError(t, st.Put(ctx, "index.noun", []byte("cat n 1 0 1 0 0\n")))

	assert.FileExists(t, filepath.Join(dir, "index.noun.lz4"))
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, "ftp://example.org/dict")
	assert.ErrorContains(t, err, "unsupported")

	_, err = Open(ctx, "mem://?compression=brotli")
	assert.Error(t, err)
}
