package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, s Store, name string) string {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

// exercise runs the behaviour every Store must share.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Open(ctx, "index.noun")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	require.NoError(t, s.Put(ctx, "index.noun", []byte("cat n 1 0 1 0 00000000\n")))
	require.NoError(t, s.Put(ctx, "data.noun", []byte("00000000 05 n 01 cat 0 000 | a cat\n")))
	require.NoError(t, s.Put(ctx, "index.noun", []byte("dog n 1 0 1 0 00000000\n")))

	assert.Equal(t, "dog n 1 0 1 0 00000000\n", read(t, s, "index.noun"))
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"data.noun", "index.noun"}, names)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())

	m := NewMemoryFrom(map[string]string{"lexnames": "00\tadj.all\t3\n"})
	assert.Equal(t, "00\tadj.all\t3\n", string(m.Bytes("lexnames")))
	assert.Nil(t, m.Bytes("frames.vrb"))

	data := []byte("mutable")
	require.NoError(t, m.Put(context.Background(), "x", data))
	data[0] = 'M'
	assert.Equal(t, "mutable", read(t, m, "x"))
}

func TestLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dict")
	s := NewLocal(dir)
	assert.Equal(t, dir, s.Root())
	exercise(t, s)

	// no temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Put(ctx, "x", nil), context.Canceled)
}

func TestCompressed(t *testing.T) {
	for _, codec := range []Codec{Zstd, LZ4} {
		t.Run(string(codec), func(t *testing.T) {
			inner := NewMemory()
			c, err := NewCompressed(inner, codec)
			require.NoError(t, err)
			exercise(t, c)

			raw := inner.Bytes("index.noun" + codec.Ext())
			require.NotNil(t, raw)
			assert.NotEqual(t, "dog n 1 0 1 0 00000000\n", string(raw))

			require.NoError(t, inner.Put(context.Background(), "stray.txt", []byte("plain")))
			names, err := c.List(context.Background())
			require.NoError(t, err)
			assert.NotContains(t, names, "stray.txt")
		})
	}

	_, err := NewCompressed(NewMemory(), Codec("gzip"))
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryFrom(map[string]string{
		"index.noun": "cat n 1 0 1 0 00000000\n",
		"noun.exc":   "mice mouse\n",
	})
	dst, err := NewCompressed(NewLocal(t.TempDir()), Zstd)
	require.NoError(t, err)

	require.NoError(t, Copy(ctx, dst, src))
	assert.Equal(t, "mice mouse\n", read(t, dst, "noun.exc"))

	back := NewMemory()
	require.NoError(t, Copy(ctx, back, dst))
	assert.Equal(t, "cat n 1 0 1 0 00000000\n", string(back.Bytes("index.noun")))
}
