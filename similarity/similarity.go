// Package similarity scores how related two synsets are. Every measure
// is read-only over its graph and safe for concurrent use.
package similarity

import (
	"math"

	"github.com/cours-de-latin/wordnet"
)

// Measure scores a pair of synsets. Disconnected or incomparable pairs
// score 0.
type Measure interface {
	Similarity(a, b *wordnet.Synset) float64
}

// DepthGraph is a graph that knows the depth of its hierarchies.
type DepthGraph interface {
	wordnet.Graph
	MaxDepth(pos wordnet.PartOfSpeech) int
}

// Path scores 1/(d+1) for the shortest hypernym path length d.
type Path struct {
	g wordnet.Graph
}

func NewPath(g wordnet.Graph) *Path { return &Path{g: g} }

func (m *Path) Similarity(a, b *wordnet.Synset) float64 {
	d := wordnet.ShortestPathDistance(m.g, a, b)
	if d < 0 {
		return 0
	}
	return 1 / float64(d+1)
}

// LeacockChodorow scores -ln((d+1)/(2*maxDepth)).
type LeacockChodorow struct {
	g DepthGraph
}

func NewLeacockChodorow(g DepthGraph) *LeacockChodorow { return &LeacockChodorow{g: g} }

func (m *LeacockChodorow) Similarity(a, b *wordnet.Synset) float64 {
	if a.POS != b.POS {
		return 0
	}
	d := wordnet.ShortestPathDistance(m.g, a, b)
	if d < 0 {
		return 0
	}
	return -math.Log(float64(d+1) / (2 * float64(m.maxDepth(a.POS))))
}

func (m *LeacockChodorow) maxDepth(pos wordnet.PartOfSpeech) int {
	return max(m.g.MaxDepth(pos), 1)
}

// ScaledLeacockChodorow divides LeacockChodorow by its largest possible
// value, -ln(1/(2*maxDepth)).
type ScaledLeacockChodorow struct {
	LeacockChodorow
}

func NewScaledLeacockChodorow(g DepthGraph) *ScaledLeacockChodorow {
	return &ScaledLeacockChodorow{LeacockChodorow{g: g}}
}

func (m *ScaledLeacockChodorow) Similarity(a, b *wordnet.Synset) float64 {
	lch := m.LeacockChodorow.Similarity(a, b)
	if lch == 0 {
		return 0
	}
	return lch / -math.Log(1/(2*float64(m.maxDepth(a.POS))))
}

// WuPalmer scores 2*depth(lcs) / (d(a,lcs)+depth(lcs) + d(b,lcs)+depth(lcs)).
// The subsumer depth is its maximum depth plus one, plus one more for
// nouns whose hierarchy has an implicit shared root.
type WuPalmer struct {
	g wordnet.Graph
}

func NewWuPalmer(g wordnet.Graph) *WuPalmer { return &WuPalmer{g: g} }

func (m *WuPalmer) Similarity(a, b *wordnet.Synset) float64 {
	lcs := wordnet.LowestCommonHypernym(m.g, a, b)
	if lcs == nil {
		return 0
	}
	depth := float64(wordnet.MaxDepth(m.g, lcs) + 1)
	if lcs.POS == wordnet.Noun {
		depth++
	}
	d1 := float64(wordnet.ShortestPathDistance(m.g, a, lcs)) + depth
	d2 := float64(wordnet.ShortestPathDistance(m.g, b, lcs)) + depth
	return 2 * depth / (d1 + d2)
}

// Resnik scores the largest information content among the lowest common
// subsumers.
type Resnik struct {
	g  wordnet.Graph
	ic *wordnet.InformationContent
}

func NewResnik(g wordnet.Graph, ic *wordnet.InformationContent) *Resnik {
	return &Resnik{g: g, ic: ic}
}

func (m *Resnik) Similarity(a, b *wordnet.Synset) float64 {
	best := 0.0
	for _, s := range wordnet.LowestCommonHypernyms(m.g, a, b) {
		if ic := m.ic.IC(s); ic > best {
			best = ic
		}
	}
	return best
}

// Lin scores 2*IC(lcs) / (IC(a)+IC(b)), or 0 when either side has no
// information content.
type Lin struct {
	resnik Resnik
}

func NewLin(g wordnet.Graph, ic *wordnet.InformationContent) *Lin {
	return &Lin{resnik: Resnik{g: g, ic: ic}}
}

func (m *Lin) Similarity(a, b *wordnet.Synset) float64 {
	ic1 := m.resnik.ic.IC(a)
	ic2 := m.resnik.ic.IC(b)
	if ic1 < 0 || ic2 < 0 || ic1+ic2 == 0 {
		return 0
	}
	return 2 * m.resnik.Similarity(a, b) / (ic1 + ic2)
}
