package wordnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSynsetIndexesLemmas(t *testing.T) {
	tx := newTaxonomy(t)

	assert.Equal(t, []*Synset{tx.dog}, tx.d.LookupExact("Domestic Dog", Noun))
	assert.Equal(t, "dog.n.01", tx.dog.Name())
	assert.Same(t, tx.dog, tx.d.SynsetByName("dog.n.01"))
	assert.Equal(t, 5, tx.d.Len())

	hotdog := addNoun(tx.d, "a frankfurter in a bun", "dog", "hotdog")
	assert.Equal(t, 2, hotdog.SenseNumber)
	assert.Same(t, hotdog, tx.d.Lookup("dog", Noun, 2))
	assert.Nil(t, tx.d.Lookup("dog", Noun, 3))
}

func TestAddLemma(t *testing.T) {
	tx := newTaxonomy(t)
	l, err := tx.d.AddLemma(tx.cat, "true cat")
	require.NoError(t, err)
	assert.Equal(t, "true_cat", l.Name)
	assert.Equal(t, []*Synset{tx.cat}, tx.d.LookupExact("true_cat", Noun))

	again, err := tx.d.AddLemma(tx.cat, "TRUE_CAT")
	require.NoError(t, err)
	assert.Same(t, l, again)

	_, err = tx.d.AddLemma(NewSynset(Noun, "stray"), "stray")
	assert.ErrorIs(t, err, ErrUnknownSynset)
}

func TestAddRelationReflexive(t *testing.T) {
	tx := newTaxonomy(t)

	assert.True(t, tx.animal.HasPointer(Hyponym, tx.cat.ID))
	assert.ElementsMatch(t, []*Synset{tx.cat, tx.dog}, Children(tx.d, tx.animal))

	require.NoError(t, tx.d.AddRelation(tx.cat, Antonym, tx.dog))
	assert.True(t, tx.dog.HasPointer(Antonym, tx.cat.ID))

	feline := NewSynset(Adjective, "of or relating to cats")
	feline.AddLemma("feline")
	tx.d.AddSynset(feline)
	require.NoError(t, tx.d.AddRelation(tx.cat, AttributeRelation, feline))
	assert.True(t, feline.HasPointer(AttributeRelation, tx.cat.ID))
	require.NoError(t, tx.d.RemoveRelation(feline, AttributeRelation, tx.cat))
	assert.False(t, tx.cat.HasPointer(AttributeRelation, feline.ID))
	assert.False(t, feline.HasPointer(AttributeRelation, tx.cat.ID))

	require.NoError(t, tx.d.RemoveRelation(tx.cat, Hypernym, tx.animal))
	assert.False(t, tx.animal.HasPointer(Hyponym, tx.cat.ID))
	assert.Empty(t, Parents(tx.d, tx.cat))
	assert.Equal(t, 0, MinDepth(tx.d, tx.cat))

	err := tx.d.AddRelation(tx.cat, Hypernym, NewSynset(Noun, "stray"))
	assert.ErrorIs(t, err, ErrUnknownSynset)
}

func TestRemoveSynset(t *testing.T) {
	tx := newTaxonomy(t)
	hotdog := addNoun(tx.d, "a frankfurter in a bun", "dog")
	require.NoError(t, tx.d.AddRelation(hotdog, AlsoSee, tx.dog))

	require.NoError(t, tx.d.RemoveSynset(tx.dog))

	assert.Nil(t, tx.d.SynsetByID(tx.dog.ID))
	assert.Equal(t, 5, tx.d.Len())
	assert.False(t, tx.animal.HasPointer(Hyponym, tx.dog.ID))
	assert.Zero(t, hotdog.NumRelations())
	assert.Empty(t, tx.d.LookupExact("domestic_dog", Noun))
	assert.Equal(t, []*Synset{hotdog}, tx.d.LookupExact("dog", Noun))
	assert.Equal(t, 1, hotdog.SenseNumber)
	assert.NotContains(t, tx.d.Lemmas(), "domestic_dog")

	assert.ErrorIs(t, tx.d.RemoveSynset(tx.dog), ErrUnknownSynset)
}

func TestReplaceSynset(t *testing.T) {
	tx := newTaxonomy(t)
	tx.cat.SenseKeys = []string{"cat%1:05:00::"}
	tx.d.senseKeys["cat%1:05:00::"] = tx.cat.ID

	felid := NewSynset(Noun, "any of various lithe-bodied carnivores")
	felid.AddLemma("cat")
	felid.AddLemma("felid")
	require.NoError(t, tx.d.ReplaceSynset(tx.cat, felid))

	assert.Nil(t, tx.d.SynsetByID(tx.cat.ID))
	assert.Equal(t, []*Synset{felid}, tx.d.LookupExact("cat", Noun))
	assert.Equal(t, []*Synset{felid}, tx.d.LookupExact("felid", Noun))
	assert.True(t, felid.HasPointer(Hypernym, tx.animal.ID))
	assert.True(t, tx.animal.HasPointer(Hyponym, felid.ID))
	assert.False(t, tx.animal.HasPointer(Hyponym, tx.cat.ID))
	assert.Same(t, felid, tx.d.SynsetBySenseKey("cat%1:05:00::"))
	assert.Equal(t, 1, felid.SenseNumber)

	verb := NewSynset(Verb, "to vomit")
	verb.AddLemma("cat")
	err := tx.d.ReplaceSynset(tx.dog, verb)
	assert.ErrorIs(t, err, ErrPartOfSpeechMismatch)
}

func TestReplaceSynsetKeepsSensePosition(t *testing.T) {
	d := New()
	first := addNoun(d, "a domestic canine", "dog")
	second := addNoun(d, "a dull unattractive person", "dog")
	first.SenseKeys = []string{"dog%1:05:00::"}
	d.senseKeys["dog%1:05:00::"] = first.ID

	repl := NewSynset(Noun, "a member of the genus Canis")
	repl.AddLemma("dog")
	require.NoError(t, d.ReplaceSynset(first, repl))

	assert.Same(t, repl, d.Lookup("dog", Noun, 1))
	assert.Same(t, second, d.Lookup("dog", Noun, 2))
	assert.Equal(t, []*Synset{repl, second}, d.LookupExact("dog", Noun))
	assert.Equal(t, 1, repl.SenseNumber)
	assert.Equal(t, 2, second.SenseNumber)

	assert.Equal(t, []string{"dog%1:05:00::"}, repl.SenseKeys)
	assert.Empty(t, first.SenseKeys)
	assert.Same(t, repl, d.SynsetBySenseKey("dog%1:05:00::"))
	for _, k := range repl.SenseKeys {
		assert.Equal(t, repl.ID, d.senseKeys[k])
	}
}

func TestMerge(t *testing.T) {
	tx := newTaxonomy(t)
	pup := addNoun(tx.d, "a young dog", "puppy", "dog")
	pup.Examples = []string{"the puppy chewed the shoe"}
	require.NoError(t, tx.d.AddRelation(pup, Hypernym, tx.animal))
	require.NoError(t, tx.d.AddRelation(tx.cat, AlsoSee, pup))
	require.NoError(t, tx.d.AddRelation(tx.dog, AlsoSee, pup))

	require.NoError(t, tx.d.Merge(tx.dog, pup))

	assert.Nil(t, tx.d.SynsetByID(pup.ID))
	assert.Equal(t, "a domesticated canine animal; a young dog", tx.dog.Definition)
	assert.Equal(t, []string{"the puppy chewed the shoe"}, tx.dog.Examples)
	assert.Len(t, tx.dog.Lemmas, 3)
	assert.Equal(t, []*Synset{tx.dog}, tx.d.LookupExact("puppy", Noun))
	assert.Equal(t, []*Synset{tx.dog}, tx.d.LookupExact("dog", Noun))

	assert.True(t, tx.cat.HasPointer(AlsoSee, tx.dog.ID))
	assert.False(t, tx.dog.HasPointer(AlsoSee, tx.dog.ID), "self-loops are dropped")
	assert.Equal(t, []*Synset{tx.animal}, Parents(tx.d, tx.dog))

	err := tx.d.Merge(tx.dog, addVerb(tx.d, "to follow", "dog"))
	assert.ErrorIs(t, err, ErrPartOfSpeechMismatch)
}

func addVerb(d *Dictionary, def string, lemmas ...string) *Synset {
	s := NewSynset(Verb, def)
	for _, l := range lemmas {
		s.AddLemma(l)
	}
	d.AddSynset(s)
	return s
}

func TestMergeAttributes(t *testing.T) {
	tx := newTaxonomy(t)
	tx.cat.SetAttribute("freq", CountAttribute(2))
	tx.cat.SetAttribute("vec", VectorAttribute{1, 2})
	tx.dog.SetAttribute("freq", CountAttribute(3))
	tx.dog.SetAttribute("vec", VectorAttribute{1, 1, 1})
	tx.dog.SetAttribute("source", StringAttribute("corpus"))

	require.NoError(t, tx.d.Merge(tx.cat, tx.dog))

	assert.Equal(t, []string{"freq", "source", "vec"}, tx.cat.AttributeNames())
	assert.Equal(t, 5, tx.cat.Attribute("freq").Object())
	assert.Equal(t, []float64{2, 3, 1}, tx.cat.Attribute("vec").Object())
	assert.Equal(t, "corpus", tx.cat.Attribute("source").Object())
	assert.Equal(t, []*Synset{tx.cat}, Children(tx.d, tx.animal))
}
