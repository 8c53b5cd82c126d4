package wordnet

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/wordnet/store"
)

func writeMemory(t *testing.T, d *Dictionary) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	require.NoError(t, d.Write(context.Background(), m))
	return m
}

func readFile(t *testing.T, s store.Store, name string) string {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func snapshot(t *testing.T, m *store.Memory) map[string]string {
	t.Helper()
	names, err := m.List(context.Background())
	require.NoError(t, err)
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = readFile(t, m, n)
	}
	return out
}

func TestWriteRoundTrip(t *testing.T) {
	tx := newTaxonomy(t)
	tx.cat.Examples = []string{"the cat sat on the mat"}

	m := writeMemory(t, tx.d)
	d, err := Load(context.Background(), m)
	require.NoError(t, err)

	require.Equal(t, tx.d.Len(), d.Len())
	assert.Equal(t, tx.d.Lemmas(), d.Lemmas())
	for _, orig := range tx.d.All() {
		got := d.SynsetByName(orig.Name())
		require.NotNil(t, got, orig.Name())
		assert.Equal(t, orig.Definition, got.Definition)
		assert.Equal(t, orig.Examples, got.Examples)
		assert.Equal(t, orig.Offset, got.Offset)
		assert.Len(t, got.Lemmas, len(orig.Lemmas))

		var want, have []string
		for _, p := range Parents(tx.d, orig) {
			want = append(want, p.Name())
		}
		for _, p := range Parents(d, got) {
			have = append(have, p.Name())
		}
		assert.Equal(t, want, have, orig.Name())
	}
}

func TestWriteRoundTripKeepsSemicolonsInExamples(t *testing.T) {
	tx := newTaxonomy(t)
	tx.cat.Examples = []string{"the cat sat; then it slept", "it purred"}

	d, err := Load(context.Background(), writeMemory(t, tx.d))
	require.NoError(t, err)

	got := d.SynsetByName(tx.cat.Name())
	require.NotNil(t, got)
	assert.Equal(t, tx.cat.Definition, got.Definition)
	assert.Equal(t, []string{"the cat sat; then it slept", "it purred"}, got.Examples)
}

func TestWriteOffsetsMatchBytePositions(t *testing.T) {
	tx := newTaxonomy(t)
	m := writeMemory(t, tx.d)
	data := readFile(t, m, "data.noun")

	for _, s := range tx.d.All() {
		require.Less(t, s.Offset, len(data))
		if s.Offset > 0 {
			assert.Equal(t, byte('\n'), data[s.Offset-1], s.Name())
		}
		field, _, _ := strings.Cut(data[s.Offset:], " ")
		off, err := strconv.Atoi(field)
		require.NoError(t, err)
		assert.Equal(t, s.Offset, off, s.Name())
		assert.Same(t, s, tx.d.SynsetAtOffset(Noun, s.Offset))
	}

	// every offset field of every line has the same width
	for _, line := range strings.Split(strings.TrimSuffix(data, "\n"), "\n") {
		field, _, _ := strings.Cut(line, " ")
		assert.Len(t, field, len(strings.Fields(data)[0]))
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	tx := newTaxonomy(t)
	first := snapshot(t, writeMemory(t, tx.d))
	assert.Equal(t, first, snapshot(t, writeMemory(t, tx.d)))

	reloaded, err := Load(context.Background(), store.NewMemoryFrom(first))
	require.NoError(t, err)
	assert.Equal(t, first, snapshot(t, writeMemory(t, reloaded)))
}

func TestWriteExcludesRemovedAndUnindexedSynsets(t *testing.T) {
	tx := newTaxonomy(t)
	require.NoError(t, tx.d.RemoveSynset(tx.plant))
	stub := NewSynset(Noun, "no lemma points here")
	tx.d.AddSynset(stub)
	require.NoError(t, tx.d.AddRelation(tx.cat, AlsoSee, stub))

	d, err := Load(context.Background(), writeMemory(t, tx.d))
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
	assert.Nil(t, d.SynsetByName("plant.n.01"))
	assert.Empty(t, d.SynsetByName("cat.n.01").Related(AlsoSee))
}

func TestWritePersistsAuxiliaryFiles(t *testing.T) {
	d := loadFixture(t)
	d.AddException(Noun, "catses", "cat")
	m := writeMemory(t, d)

	got, err := Load(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, got.Exceptions(Noun, "kitties"))
	assert.Equal(t, []string{"cat"}, got.Exceptions(Noun, "catses"))
	assert.Equal(t, "verb.body", got.LexFileName(34))
	assert.Equal(t, "Somebody ----s", got.Frame(2))

	cat := got.SynsetBySenseKey("cat%1:05:00::")
	require.NotNil(t, cat)
	assert.Equal(t, "cat.n.01", cat.Name())
	assert.Equal(t, d.Lookup("cat", Noun, 1).Offset, cat.Offset)

	purr := got.Lookup("purr", Verb, 1)
	require.NotNil(t, purr)
	assert.Equal(t, []string{"Something purrs"}, purr.Lemmas[0].Frames)
	f, ok := cat.RelatedForm(DerivationallyRelated, purr.ID)
	require.True(t, ok)
	assert.Equal(t, RelatedForm{Source: 1, Target: 1}, f)
	assert.Contains(t, readFile(t, m, "index.sense"), "purr%2:34:00:: ")
}

func TestOffsetWidth(t *testing.T) {
	assert.Equal(t, 1, digits(0))
	assert.Equal(t, 1, digits(9))
	assert.Equal(t, 2, digits(10))
	assert.Equal(t, 8, digits(12345678))

	assert.Equal(t, 1, offsetWidth(0, 0))
	assert.Equal(t, 2, offsetWidth(95, 1))
	assert.Equal(t, 3, offsetWidth(95, 3))
	assert.Equal(t, 1000, pow10(3))
}
