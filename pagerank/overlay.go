package pagerank

import (
	"github.com/cours-de-latin/wordnet"
)

// Base is a graph that can tell which handles are still unused.
type Base interface {
	wordnet.Graph
	NextID() wordnet.SynsetID
}

// Overlay adds temporary synsets on top of a base graph. Lookups check
// the overlay first and fall through to the base, so the base is never
// written to. An Overlay belongs to a single goroutine.
type Overlay struct {
	base  Base
	first wordnet.SynsetID
	added []*wordnet.Synset
}

// NewOverlay returns an empty overlay over base.
func NewOverlay(base Base) *Overlay {
	return &Overlay{base: base, first: base.NextID()}
}

func (o *Overlay) SynsetByID(id wordnet.SynsetID) *wordnet.Synset {
	if id >= o.first {
		if i := int(id - o.first); i < len(o.added) {
			return o.added[i]
		}
		return nil
	}
	return o.base.SynsetByID(id)
}

// Add places s in the overlay and assigns it a handle above every base
// handle.
func (o *Overlay) Add(s *wordnet.Synset) wordnet.SynsetID {
	s.ID = o.first + wordnet.SynsetID(len(o.added))
	o.added = append(o.added, s)
	return s.ID
}

// AddTerm creates a node for a context word linked to each of its
// candidate senses through wordnet.Related.
func (o *Overlay) AddTerm(word string, candidates []*wordnet.Synset) *wordnet.Synset {
	term := wordnet.NewSynset(wordnet.Noun, "")
	term.AddLemma(word)
	for _, c := range candidates {
		term.Link(wordnet.Related, c.ID)
	}
	o.Add(term)
	return term
}

// Nodes returns the overlay's own synsets in insertion order.
func (o *Overlay) Nodes() []*wordnet.Synset { return o.added }

// Len is the number of overlay synsets.
func (o *Overlay) Len() int { return len(o.added) }
