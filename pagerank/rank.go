package pagerank

import (
	"math"

	"github.com/cours-de-latin/wordnet"
)

const (
	DefaultIterations = 15
	// DefaultDamping is the share of a node's mass pushed along its links
	// at each step. The rest returns through the source weights.
	DefaultDamping = 0.85
)

type config struct {
	iterations int
	damping    float64
}

// Option tunes a ranking run.
type Option func(*config)

func WithIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.iterations = n
		}
	}
}

func WithDamping(d float64) Option {
	return func(c *config) {
		if d > 0 && d < 1 {
			c.damping = d
		}
	}
}

// Scores is the result of a ranking run.
type Scores struct {
	core    *Core
	overlay *Overlay
	ranks   []float64
	// Delta is the L1 change made by the last iteration.
	Delta float64
}

// Of returns the rank of id, or 0 when id took no part in the run.
func (s *Scores) Of(id wordnet.SynsetID) float64 {
	if i, ok := s.core.indexOf(s.overlay, id); ok {
		return s.ranks[i]
	}
	return 0
}

// Best returns the candidate with the highest rank. Ties go to the later
// candidate. It returns nil for no candidates.
func (s *Scores) Best(candidates []*wordnet.Synset) (*wordnet.Synset, float64) {
	var best *wordnet.Synset
	bestRank := 0.0
	for _, c := range candidates {
		if r := s.Of(c.ID); best == nil || r >= bestRank {
			best, bestRank = c, r
		}
	}
	return best, bestRank
}

// Rank runs personalized PageRank over the core extended by overlay, which
// may be nil. source holds the teleport weights; ranking starts from it.
// Each step pushes damping times every node's mass along its transition
// vector, then gives the lost mass back in proportion to source.
func (c *Core) Rank(overlay *Overlay, source map[wordnet.SynsetID]float64, opts ...Option) *Scores {
	cfg := config{iterations: DefaultIterations, damping: DefaultDamping}
	for _, opt := range opts {
		opt(&cfg)
	}

	trans := c.trans
	if overlay != nil && overlay.Len() > 0 {
		trans = make([][]edge, 0, c.Len()+overlay.Len())
		trans = append(trans, c.trans...)
		for _, s := range overlay.Nodes() {
			trans = append(trans, transitions(s, func(t wordnet.SynsetID) (int, bool) {
				return c.indexOf(overlay, t)
			}))
		}
	}
	n := len(trans)

	teleport := make([]float64, n)
	for id, w := range source {
		if i, ok := c.indexOf(overlay, id); ok {
			teleport[i] += w
		}
	}

	ranks := make([]float64, n)
	copy(ranks, teleport)
	next := make([]float64, n)
	scores := &Scores{core: c, overlay: overlay}
	for range cfg.iterations {
		clear(next)
		oldL1 := 0.0
		for i, r := range ranks {
			if r == 0 {
				continue
			}
			oldL1 += math.Abs(r)
			pushed := r * cfg.damping
			for _, e := range trans[i] {
				next[e.to] += pushed * e.weight
			}
		}
		newL1 := 0.0
		for _, r := range next {
			newL1 += math.Abs(r)
		}
		gamma := oldL1 - newL1
		delta := 0.0
		for i := range next {
			next[i] += gamma * teleport[i]
			delta += math.Abs(next[i] - ranks[i])
		}
		ranks, next = next, ranks
		scores.Delta = delta
	}
	scores.ranks = ranks
	return scores
}

func (c *Core) indexOf(overlay *Overlay, id wordnet.SynsetID) (int, bool) {
	if i, ok := c.index[id]; ok {
		return i, true
	}
	if overlay != nil && id >= overlay.first {
		if i := int(id - overlay.first); i < overlay.Len() {
			return c.Len() + i, true
		}
	}
	return 0, false
}
