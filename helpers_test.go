package wordnet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// taxonomy is entity -> animal -> {cat, dog} plus entity -> plant.
type taxonomy struct {
	d                               *Dictionary
	entity, animal, cat, dog, plant *Synset
}

func newTaxonomy(t *testing.T) *taxonomy {
	t.Helper()
	d := New()
	tx := &taxonomy{
		d:      d,
		entity: addNoun(d, "that which exists", "entity"),
		animal: addNoun(d, "a living organism that moves", "animal", "animate_being"),
		cat:    addNoun(d, "a small domesticated feline animal", "cat"),
		dog:    addNoun(d, "a domesticated canine animal", "dog", "domestic_dog"),
		plant:  addNoun(d, "a living organism without locomotion", "plant"),
	}
	require.NoError(t, d.AddRelation(tx.animal, Hypernym, tx.entity))
	require.NoError(t, d.AddRelation(tx.plant, Hypernym, tx.entity))
	require.NoError(t, d.AddRelation(tx.cat, Hypernym, tx.animal))
	require.NoError(t, d.AddRelation(tx.dog, Hypernym, tx.animal))
	return tx
}

func addNoun(d *Dictionary, def string, lemmas ...string) *Synset {
	s := NewSynset(Noun, def)
	for _, l := range lemmas {
		s.AddLemma(l)
	}
	d.AddSynset(s)
	return s
}
