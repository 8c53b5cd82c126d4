package similarity

import (
	"github.com/cours-de-latin/wordnet"
)

// Lesk counts the gloss tokens of a that also occur in the gloss of b.
type Lesk struct{}

func NewLesk() *Lesk { return &Lesk{} }

func (Lesk) Similarity(a, b *wordnet.Synset) float64 {
	return float64(TokenOverlap(wordnet.Tokens(a.Gloss()), wordnet.Tokens(b.Gloss())))
}

// ExtendedLesk sums TokenOverlapExp over every pair of glosses drawn from
// the parents, children and the synset itself on each side.
type ExtendedLesk struct {
	g wordnet.Graph
}

func NewExtendedLesk(g wordnet.Graph) *ExtendedLesk { return &ExtendedLesk{g: g} }

func (m *ExtendedLesk) Similarity(a, b *wordnet.Synset) float64 {
	glosses1 := m.neighbourhood(a)
	glosses2 := m.neighbourhood(b)
	score := 0
	for _, g1 := range glosses1 {
		for _, g2 := range glosses2 {
			score += TokenOverlapExp(g1, g2)
		}
	}
	return float64(score)
}

func (m *ExtendedLesk) neighbourhood(s *wordnet.Synset) [][]string {
	set := append(wordnet.Parents(m.g, s), wordnet.Children(m.g, s)...)
	set = append(set, s)
	seen := make(map[wordnet.SynsetID]bool, len(set))
	out := make([][]string, 0, len(set))
	for _, x := range set {
		if seen[x.ID] {
			continue
		}
		seen[x.ID] = true
		out = append(out, wordnet.Tokens(x.Gloss()))
	}
	return out
}

// TokenOverlap counts the tokens of t1 present anywhere in t2.
func TokenOverlap(t1, t2 []string) int {
	set := make(map[string]struct{}, len(t2))
	for _, t := range t2 {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range t1 {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// TokenOverlapExp scores every pair of equal tokens by the square of the
// length of the matching run starting there, so longer shared phrases
// weigh more than the same words scattered.
func TokenOverlapExp(t1, t2 []string) int {
	score := 0
	for i := range t1 {
		for j := range t2 {
			if t1[i] == t2[j] {
				n := overlapRun(t1, i, t2, j)
				score += n * n
			}
		}
	}
	return score
}

func overlapRun(t1 []string, i int, t2 []string, j int) int {
	n := 1
	for i+n < len(t1) && j+n < len(t2) && t1[i+n] == t2[j+n] {
		n++
	}
	return n
}
