package wsd

import (
	"context"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/pagerank"
	"github.com/cours-de-latin/wordnet/similarity"
)

// FirstSense labels every token with its most frequent sense.
type FirstSense struct {
	lex Lexicon
}

func NewFirstSense(lex Lexicon) *FirstSense { return &FirstSense{lex: lex} }

func (f *FirstSense) Disambiguate(ctx context.Context, tokens []Token) ([]Sense, error) {
	var out []Sense
	for i, t := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if senses := Candidates(f.lex, t); len(senses) > 0 {
			out = append(out, Sense{Index: i, Word: t.Word, Synset: senses[0]})
		}
	}
	return out, nil
}

// Overlap picks the candidate whose summed similarity to every candidate
// of every context word is largest. The first candidate wins when nothing
// scores above zero.
type Overlap struct {
	lex     Lexicon
	measure similarity.Measure
}

func NewOverlap(lex Lexicon, m similarity.Measure) *Overlap {
	return &Overlap{lex: lex, measure: m}
}

// NewLesk scores candidates by plain gloss overlap.
func NewLesk(d *wordnet.Dictionary) *Overlap {
	return NewOverlap(d, similarity.NewLesk())
}

// NewExtendedLesk scores candidates by gloss overlap over their
// neighbourhoods.
func NewExtendedLesk(d *wordnet.Dictionary) *Overlap {
	return NewOverlap(d, similarity.NewExtendedLesk(d))
}

func (o *Overlap) Choose(focus Token, context []Token) *wordnet.Synset {
	senses := Candidates(o.lex, focus)
	if len(senses) == 0 {
		return nil
	}
	scores := make([]float64, len(senses))
	for _, t := range context {
		for _, other := range Candidates(o.lex, t) {
			for i, s := range senses {
				scores[i] += o.measure.Similarity(s, other)
			}
		}
	}
	best, bestScore := 0, 0.0
	for i, sc := range scores {
		if sc > bestScore {
			best, bestScore = i, sc
		}
	}
	return senses[best]
}

// PersonalizedPageRank adds one node per word of the window, linked to the
// word's candidate senses, teleports evenly to those nodes and picks the
// focus candidate with the highest rank. The core is shared; each call
// works on its own overlay.
type PersonalizedPageRank struct {
	dict *wordnet.Dictionary
	core *pagerank.Core
	opts []pagerank.Option
}

func NewPersonalizedPageRank(d *wordnet.Dictionary, core *pagerank.Core, opts ...pagerank.Option) *PersonalizedPageRank {
	return &PersonalizedPageRank{dict: d, core: core, opts: opts}
}

func (p *PersonalizedPageRank) Choose(focus Token, context []Token) *wordnet.Synset {
	candidates := Candidates(p.dict, focus)
	if len(candidates) == 0 {
		return nil
	}
	overlay := pagerank.NewOverlay(p.dict)
	terms := []*wordnet.Synset{overlay.AddTerm(focus.Word, candidates)}
	for _, t := range context {
		if senses := Candidates(p.dict, t); len(senses) > 0 {
			terms = append(terms, overlay.AddTerm(t.Word, senses))
		}
	}

	source := make(map[wordnet.SynsetID]float64, len(terms))
	for _, t := range terms {
		source[t.ID] = 1 / float64(len(terms))
	}
	best, _ := p.core.Rank(overlay, source, p.opts...).Best(candidates)
	return best
}
