package similarity

import (
	"github.com/cours-de-latin/wordnet"
)

const (
	hsoC        = 8.0
	hsoMaxLinks = 5
)

type direction int

const (
	up direction = iota
	down
	side
)

var directions = map[wordnet.Relation]direction{
	wordnet.Hypernym:          up,
	wordnet.MemberMeronym:     up,
	wordnet.SubstanceMeronym:  up,
	wordnet.PartMeronym:       up,
	wordnet.Hyponym:           down,
	wordnet.MemberHolonym:     down,
	wordnet.SubstanceHolonym:  down,
	wordnet.PartHolonym:       down,
	wordnet.Cause:             down,
	wordnet.Entailment:        down,
	wordnet.AlsoSee:           side,
	wordnet.AttributeRelation: side,
	wordnet.Antonym:           side,
	wordnet.SimilarTo:         side,
}

// hsoState is a node of the path automaton. Once a path has gone down or
// sideways it may never go up again.
type hsoState int

const (
	hsoStart    hsoState = iota
	hsoUp                // only upward links so far
	hsoSide              // upward then sideways, or sideways from the start
	hsoDown              // downward from the start
	hsoDownOnly          // after a turn downward; only downward links remain
	hsoSideOnly          // downward then sideways; only sideways links remain
)

// next returns the state reached by a link in direction dir and whether
// the link changes direction.
func (s hsoState) next(dir direction) (hsoState, bool, bool) {
	switch s {
	case hsoStart:
		switch dir {
		case up:
			return hsoUp, false, true
		case down:
			return hsoDown, false, true
		case side:
			return hsoSide, false, true
		}
	case hsoUp:
		switch dir {
		case up:
			return hsoUp, false, true
		case down:
			return hsoDownOnly, true, true
		case side:
			return hsoSide, true, true
		}
	case hsoSide:
		switch dir {
		case side:
			return hsoSide, false, true
		case down:
			return hsoDownOnly, true, true
		}
	case hsoDown:
		switch dir {
		case down:
			return hsoDownOnly, false, true
		case side:
			return hsoSideOnly, true, true
		}
	case hsoDownOnly:
		if dir == down {
			return hsoDownOnly, false, true
		}
	case hsoSideOnly:
		if dir == side {
			return hsoSideOnly, false, true
		}
	}
	return 0, false, false
}

// HirstStOnge scores the best path of at most five links allowed by the
// direction automaton as C - length - turns, divided by C.
type HirstStOnge struct {
	g wordnet.Graph
}

func NewHirstStOnge(g wordnet.Graph) *HirstStOnge { return &HirstStOnge{g: g} }

func (m *HirstStOnge) Similarity(a, b *wordnet.Synset) float64 {
	if a == b {
		return 1
	}
	best := m.walk(a, b, hsoStart, 0, 0)
	return max(best, 0) / hsoC
}

func (m *HirstStOnge) walk(src, dest *wordnet.Synset, state hsoState, depth, turns int) float64 {
	best := 0.0
	if src == dest && depth > 0 {
		best = hsoC - float64(depth) - float64(turns)
	}
	if depth >= hsoMaxLinks {
		return best
	}
	for _, p := range src.Pointers() {
		dir, ok := directions[p.Relation]
		if !ok {
			continue
		}
		next, turned, ok := state.next(dir)
		if !ok {
			continue
		}
		t := m.g.SynsetByID(p.Target)
		if t == nil {
			continue
		}
		n := turns
		if turned {
			n++
		}
		best = max(best, m.walk(t, dest, next, depth+1, n))
	}
	return best
}
