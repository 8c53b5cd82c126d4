package wordnet

// Graph resolves synset handles. A Dictionary is a Graph; so is a
// per-document overlay layered on top of one.
type Graph interface {
	SynsetByID(id SynsetID) *Synset
}

// RelatedSynsets resolves the targets of r from s. Dangling handles are
// skipped.
func RelatedSynsets(g Graph, s *Synset, r Relation) []*Synset {
	return resolve(g, s, r)
}

func resolve(g Graph, s *Synset, rels ...Relation) []*Synset {
	var out []*Synset
	for _, p := range s.pointers {
		for _, r := range rels {
			if p.Relation != r {
				continue
			}
			if t := g.SynsetByID(p.Target); t != nil && !containsSynset(out, t) {
				out = append(out, t)
			}
			break
		}
	}
	return out
}

func containsSynset(list []*Synset, s *Synset) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Parents returns the hypernyms and instance hypernyms of s.
func Parents(g Graph, s *Synset) []*Synset {
	return resolve(g, s, parentRelations...)
}

// Children returns the hyponyms and instance hyponyms of s.
func Children(g Graph, s *Synset) []*Synset {
	return resolve(g, s, childRelations...)
}

// MinDepth is the length of the shortest hypernym chain from s to a root.
func MinDepth(g Graph, s *Synset) int {
	return depth(g, s, false, make(map[SynsetID]bool))
}

// MaxDepth is the length of the longest hypernym chain from s to a root.
func MaxDepth(g Graph, s *Synset) int {
	return depth(g, s, true, make(map[SynsetID]bool))
}

// depth walks parents, ignoring any parent already on the current path,
// so hypernym cycles terminate.
func depth(g Graph, s *Synset, longest bool, onPath map[SynsetID]bool) int {
	cache := &s.minDepth
	if longest {
		cache = &s.maxDepth
	}
	if v := cache.Load(); v > 0 {
		return int(v) - 1
	}

	onPath[s.ID] = true
	best := -1
	for _, p := range Parents(g, s) {
		if onPath[p.ID] {
			continue
		}
		d := depth(g, p, longest, onPath) + 1
		if best < 0 || (longest && d > best) || (!longest && d < best) {
			best = d
		}
	}
	delete(onPath, s.ID)

	if best < 0 {
		best = 0
	}
	cache.Store(int32(best + 1))
	return best
}
