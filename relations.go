package wordnet

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// HypernymStatus classifies a (child, ancestor) term pair against the
// hierarchy.
type HypernymStatus int

const (
	// TermsMissing: neither term has synsets.
	TermsMissing HypernymStatus = iota
	// NovelHyponym: only the ancestor term is known.
	NovelHyponym
	// NovelHypernym: only the child term is known.
	NovelHypernym
	// KnownHypernym: some ancestor synset subsumes some child synset.
	KnownHypernym
	// KnownNonHypernym: both terms are known and unrelated by hypernymy.
	KnownNonHypernym
)

var hypernymStatusNames = [...]string{
	"TERMS_MISSING", "NOVEL_HYPONYM", "NOVEL_HYPERNYM", "KNOWN_HYPERNYM", "KNOWN_NON_HYPERNYM",
}

func (h HypernymStatus) String() string {
	if h < 0 || int(h) >= len(hypernymStatusNames) {
		return "UNKNOWN"
	}
	return hypernymStatusNames[h]
}

// ClassifyHypernym reports whether any of ancestors lies on a parent
// path of any of children.
func ClassifyHypernym(g Graph, children, ancestors []*Synset) HypernymStatus {
	switch {
	case len(children) == 0 && len(ancestors) == 0:
		return TermsMissing
	case len(ancestors) == 0:
		return NovelHypernym
	case len(children) == 0:
		return NovelHyponym
	}

	known := roaring.New()
	for _, c := range children {
		for _, path := range ParentPaths(g, c) {
			for _, s := range path {
				known.Add(uint32(s.ID))
			}
		}
	}
	for _, c := range children {
		known.Remove(uint32(c.ID))
	}
	for _, a := range ancestors {
		if known.Contains(uint32(a.ID)) {
			return KnownHypernym
		}
	}
	return KnownNonHypernym
}

// HypernymStatus looks both terms up as pos and classifies them.
func (d *Dictionary) HypernymStatus(child, ancestor string, pos PartOfSpeech) HypernymStatus {
	return ClassifyHypernym(d, d.Synsets(child, pos), d.Synsets(ancestor, pos))
}

// ParentPaths enumerates every hypernym path from a root down to s. Each
// path starts at a root and ends with s. A parent already on the current
// path is not followed again.
func ParentPaths(g Graph, s *Synset) [][]*Synset {
	return parentPaths(g, s, make(map[SynsetID]bool))
}

func parentPaths(g Graph, s *Synset, onPath map[SynsetID]bool) [][]*Synset {
	onPath[s.ID] = true
	defer delete(onPath, s.ID)

	var paths [][]*Synset
	for _, p := range Parents(g, s) {
		if onPath[p.ID] {
			continue
		}
		for _, path := range parentPaths(g, p, onPath) {
			ext := make([]*Synset, len(path)+1)
			copy(ext, path)
			ext[len(path)] = s
			paths = append(paths, ext)
		}
	}
	if len(paths) == 0 {
		paths = [][]*Synset{{s}}
	}
	return paths
}

// LowestCommonHypernyms returns the deepest shared ancestors of a and b,
// ordered by handle. Depth is the longest distance from a root over all
// parent paths of either synset.
func LowestCommonHypernyms(g Graph, a, b *Synset) []*Synset {
	depths := make(map[SynsetID]int)
	for _, path := range ParentPaths(g, a) {
		for i, s := range path {
			if d, ok := depths[s.ID]; !ok || i > d {
				depths[s.ID] = i
			}
		}
	}

	common := make(map[SynsetID]*Synset)
	for _, path := range ParentPaths(g, b) {
		for i, s := range path {
			d, ok := depths[s.ID]
			if !ok {
				continue
			}
			common[s.ID] = s
			depths[s.ID] = max(d, i)
		}
	}

	best := 0
	for id := range common {
		best = max(best, depths[id])
	}
	var out []*Synset
	for id, s := range common {
		if depths[id] == best {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LowestCommonHypernym returns the first of LowestCommonHypernyms, or nil.
func LowestCommonHypernym(g Graph, a, b *Synset) *Synset {
	if subsumers := LowestCommonHypernyms(g, a, b); len(subsumers) > 0 {
		return subsumers[0]
	}
	return nil
}

// ParentDistances maps s and each of its ancestors to the shortest (or,
// with longest set, the longest) hypernym distance from s.
func ParentDistances(g Graph, s *Synset, longest bool) map[SynsetID]int {
	dist := map[SynsetID]int{s.ID: 0}
	seen := map[SynsetID]bool{s.ID: true}
	for _, p := range Parents(g, s) {
		parentDistances(g, p, dist, seen, 1, longest)
	}
	return dist
}

// parentDistances uses a recursion-local seen set so that an ancestor is
// revisited through every distinct path.
func parentDistances(g Graph, s *Synset, dist map[SynsetID]int, seen map[SynsetID]bool, depth int, longest bool) {
	if seen[s.ID] {
		return
	}
	seen[s.ID] = true
	defer delete(seen, s.ID)

	if old, ok := dist[s.ID]; !ok || (longest && depth > old) || (!longest && depth < old) {
		dist[s.ID] = depth
	}
	for _, p := range Parents(g, s) {
		parentDistances(g, p, dist, seen, depth+1, longest)
	}
}

// ShortestPathDistance is the shortest hypernym path joining a and b
// through a shared ancestor, or -1 when they share none.
func ShortestPathDistance(g Graph, a, b *Synset) int {
	return pathDistance(g, a, b, false)
}

// LongestPathDistance is the longest such path, or -1.
func LongestPathDistance(g Graph, a, b *Synset) int {
	return pathDistance(g, a, b, true)
}

func pathDistance(g Graph, a, b *Synset, longest bool) int {
	if a == nil || b == nil {
		return -1
	}
	da := ParentDistances(g, a, longest)
	db := ParentDistances(g, b, longest)
	best := -1
	for id, x := range da {
		y, ok := db[id]
		if !ok {
			continue
		}
		if sum := x + y; best < 0 || (longest && sum > best) || (!longest && sum < best) {
			best = sum
		}
	}
	return best
}

// CousinDistance finds the pair of synsets across the two sets joined by
// the shortest path through a shared ancestor and returns the two
// one-sided distances. A side longer than maxDepth, or a missing
// connection, is reported as math.MaxInt.
func CousinDistance(g Graph, first, second []*Synset, maxDepth int) (int, int) {
	cache := make(map[SynsetID]map[SynsetID]int, len(second))
	bestX, bestY := math.MaxInt, math.MaxInt
	bestSum := math.MaxInt
	for _, a := range first {
		da := ParentDistances(g, a, false)
		for _, b := range second {
			db, ok := cache[b.ID]
			if !ok {
				db = ParentDistances(g, b, false)
				cache[b.ID] = db
			}
			for id, x := range da {
				y, ok := db[id]
				if ok && x+y < bestSum {
					bestSum, bestX, bestY = x+y, x, y
				}
			}
		}
	}
	if bestX > maxDepth {
		bestX = math.MaxInt
	}
	if bestY > maxDepth {
		bestY = math.MaxInt
	}
	return bestX, bestY
}

// attachmentEpsilon keeps the odds transform finite for a score of 1.
const attachmentEpsilon = 1.000001

func oddsScore(depth int, score, decay float64) float64 {
	m := math.Pow(decay, float64(depth-1)) * score
	return m / (attachmentEpsilon - m)
}

func errorScore(depth int, score, decay float64) float64 {
	m := math.Pow(decay, float64(depth-1)) * score
	return (attachmentEpsilon - m) / m
}

// BestAttachment picks, among candidate attachment synsets grouped by
// term, the one with the highest product of transformed odds: its own
// evidence at depth 1 times the evidence of every ancestor on its parent
// paths, attenuated by decay^(distance-1). Ties go to the later candidate.
func BestAttachment(g Graph, groups [][]*Synset, scores []float64, decay float64) (*Synset, float64) {
	evidence := attachmentEvidence(groups, scores)
	var best *Synset
	bestScore := 0.0
	for i, group := range groups {
		if i >= len(scores) {
			break
		}
		add := oddsScore(1, scores[i], decay)
		for _, cand := range group {
			implied := 1.0
			for _, path := range ParentPaths(g, cand) {
				dist := len(path)
				for _, anc := range path {
					dist--
					if dist == 0 {
						continue
					}
					if e, ok := evidence[anc.ID]; ok {
						implied *= oddsScore(dist, e, decay)
					}
				}
			}
			if total := add * implied; total >= bestScore {
				best, bestScore = cand, total
			}
		}
	}
	return best, bestScore
}

// BestAttachmentWithError is the error-minimizing variant of
// BestAttachment: each evidenced synset on a candidate's parent paths,
// the candidate included at depth 1, contributes (1.000001-m)/m and the
// candidate with the smallest product wins.
func BestAttachmentWithError(g Graph, groups [][]*Synset, scores []float64, decay float64) (*Synset, float64) {
	evidence := attachmentEvidence(groups, scores)
	var best *Synset
	bestErr := math.MaxFloat64
	for _, group := range groups {
		for _, cand := range group {
			implied := 1.0
			for _, path := range ParentPaths(g, cand) {
				depth := len(path)
				for _, anc := range path {
					if e, ok := evidence[anc.ID]; ok {
						implied *= errorScore(depth, e, decay)
					}
					depth--
				}
			}
			if implied <= bestErr {
				best, bestErr = cand, implied
			}
		}
	}
	return best, bestErr
}

func attachmentEvidence(groups [][]*Synset, scores []float64) map[SynsetID]float64 {
	evidence := make(map[SynsetID]float64)
	for i, group := range groups {
		if i >= len(scores) {
			break
		}
		for _, s := range group {
			evidence[s.ID] = scores[i]
		}
	}
	return evidence
}

// BestAttachmentPoint resolves each candidate lemma to its noun synsets
// and runs BestAttachment with the matching evidence scores.
func (d *Dictionary) BestAttachmentPoint(lemmas []string, scores []float64, decay float64) (*Synset, float64) {
	return BestAttachment(d, d.nounGroups(lemmas), scores, decay)
}

// BestAttachmentPointWithError is the dictionary form of BestAttachmentWithError.
func (d *Dictionary) BestAttachmentPointWithError(lemmas []string, scores []float64, decay float64) (*Synset, float64) {
	return BestAttachmentWithError(d, d.nounGroups(lemmas), scores, decay)
}

func (d *Dictionary) nounGroups(lemmas []string) [][]*Synset {
	groups := make([][]*Synset, len(lemmas))
	for i, l := range lemmas {
		groups[i] = d.Synsets(l, Noun)
	}
	return groups
}
