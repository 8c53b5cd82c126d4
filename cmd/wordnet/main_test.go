package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/wordnet"
)

func writeDictionary(t *testing.T) string {
	t.Helper()
	d := wordnet.New()
	add := func(lemma, def string) *wordnet.Synset {
		s := wordnet.NewSynset(wordnet.Noun, def)
		s.AddLemma(lemma)
		d.AddSynset(s)
		return s
	}
	entity := add("entity", "that which exists")
	animal := add("animal", "a living organism that moves")
	cat := add("cat", "a small domesticated feline animal")
	dog := add("dog", "a domesticated canine animal")
	require.NoError(t, d.AddRelation(animal, wordnet.Hypernym, entity))
	require.NoError(t, d.AddRelation(cat, wordnet.Hypernym, animal))
	require.NoError(t, d.AddRelation(dog, wordnet.Hypernym, animal))

	dir := t.TempDir()
	require.NoError(t, d.WriteDir(dir))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLookupJSON(t *testing.T) {
	dir := writeDictionary(t)
	out, err := execute(t, "--dict", dir, "-o", "json", "lookup", "cats", "-p", "n")
	require.NoError(t, err)

	var rows []synsetRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "cat.n.01", rows[0].Name)
	assert.Equal(t, "a small domesticated feline animal", rows[0].Definition)

	_, err = execute(t, "--dict", dir, "lookup", "unicorn")
	assert.Error(t, err)
}

func TestSimilarityYAML(t *testing.T) {
	dir := writeDictionary(t)
	out, err := execute(t, "--dict", dir, "-o", "yaml", "similarity", "cat.n.01", "dog.n.01", "-m", "path,wup")
	require.NoError(t, err)

	var rows []scoreRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.InDelta(t, 1.0/3, rows[0].Score, 1e-9)
	assert.InDelta(t, 0.75, rows[1].Score, 1e-9)

	_, err = execute(t, "--dict", dir, "similarity", "cat.n.01", "dog.n.01", "-m", "resnik")
	assert.Error(t, err)
}

func TestPathAndStatsTables(t *testing.T) {
	dir := writeDictionary(t)
	out, err := execute(t, "--dict", dir, "path", "cat.n.01", "dog.n.01")
	require.NoError(t, err)
	assert.Contains(t, out, "animal.n.01")

	out, err = execute(t, "--dict", dir, "-o", "json", "stats")
	require.NoError(t, err)
	var rows []statsRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, statsRow{POS: "noun", Synsets: 4, Lemmas: 4, MaxDepth: 2}, rows[0])
}

func TestCopyCompressed(t *testing.T) {
	dir := writeDictionary(t)
	dst := "dir://" + filepath.Join(t.TempDir(), "zst") + "?compression=zstd"

	out, err := execute(t, "copy", dir, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "copied 4 synsets")

	out, err = execute(t, "--dict", dst, "-o", "json", "lookup", "dog")
	require.NoError(t, err)
	assert.Contains(t, out, "dog.n.01")
}

func TestUnknownOutput(t *testing.T) {
	dir := writeDictionary(t)
	_, err := execute(t, "--dict", dir, "-o", "xml", "stats")
	assert.Error(t, err)
}
