// Package pagerank ranks synsets with personalized PageRank. A Core holds
// the transition weights of a fixed part of the dictionary and is shared by
// every run; per-document nodes live in an Overlay that falls through to
// the base graph.
package pagerank

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/cours-de-latin/wordnet"
)

type edge struct {
	to     int
	weight float64
}

// Core is the fixed node set of a ranking together with its transition
// vectors. It is immutable and safe for concurrent use.
type Core struct {
	graph wordnet.Graph
	nodes []wordnet.SynsetID
	index map[wordnet.SynsetID]int
	trans [][]edge
}

// NewCore builds transitions for every member synset. Each outgoing edge of
// a member, whatever its relation, gets weight 1/NumRelations. Edges to
// synsets outside members carry their share of mass out of the ranking.
func NewCore(g wordnet.Graph, members *roaring.Bitmap) *Core {
	c := &Core{
		graph: g,
		nodes: make([]wordnet.SynsetID, 0, members.GetCardinality()),
		index: make(map[wordnet.SynsetID]int, members.GetCardinality()),
	}
	it := members.Iterator()
	for it.HasNext() {
		id := wordnet.SynsetID(it.Next())
		if g.SynsetByID(id) == nil {
			continue
		}
		c.index[id] = len(c.nodes)
		c.nodes = append(c.nodes, id)
	}
	c.trans = make([][]edge, len(c.nodes))
	for i, id := range c.nodes {
		c.trans[i] = transitions(g.SynsetByID(id), func(t wordnet.SynsetID) (int, bool) {
			j, ok := c.index[t]
			return j, ok
		})
	}
	return c
}

// FullCore covers every live synset of d.
func FullCore(d *wordnet.Dictionary) *Core {
	members := roaring.New()
	for _, s := range d.All() {
		members.Add(uint32(s.ID))
	}
	return NewCore(d, members)
}

// Subgraph collects the synsets within hops edges of the seeds, following
// every relation.
func Subgraph(g wordnet.Graph, seeds []*wordnet.Synset, hops int) *roaring.Bitmap {
	seen := roaring.New()
	frontier := make([]*wordnet.Synset, 0, len(seeds))
	for _, s := range seeds {
		if seen.CheckedAdd(uint32(s.ID)) {
			frontier = append(frontier, s)
		}
	}
	for range hops {
		var next []*wordnet.Synset
		for _, s := range frontier {
			for _, p := range s.Pointers() {
				t := g.SynsetByID(p.Target)
				if t != nil && seen.CheckedAdd(uint32(t.ID)) {
					next = append(next, t)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return seen
}

// Len is the number of core nodes.
func (c *Core) Len() int { return len(c.nodes) }

// Contains reports whether id is a core node.
func (c *Core) Contains(id wordnet.SynsetID) bool {
	_, ok := c.index[id]
	return ok
}

func transitions(s *wordnet.Synset, lookup func(wordnet.SynsetID) (int, bool)) []edge {
	n := s.NumRelations()
	if n == 0 {
		return nil
	}
	w := 1 / float64(n)
	out := make([]edge, 0, n)
	for _, p := range s.Pointers() {
		if j, ok := lookup(p.Target); ok {
			out = append(out, edge{to: j, weight: w})
		}
	}
	return out
}
