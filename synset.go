package wordnet

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
)

// SynsetID is the arena handle of a synset within its graph. It is
// stable for the lifetime of the graph and unrelated to file offsets.
type SynsetID uint32

// Pointer is one outgoing edge of a synset.
type Pointer struct {
	Relation Relation
	Target   SynsetID
}

// RelatedForm names the lemmas that justify a lexical pointer. Both
// indices are 1-based positions in the source and target lemma lists.
type RelatedForm struct {
	Source int
	Target int
}

// Synset is a concept node: a set of synonymous lemmas sharing a gloss.
type Synset struct {
	ID SynsetID

	// Offset is the byte offset of the synset in its data file. It is
	// reassigned whenever the dictionary is written.
	Offset int

	POS          PartOfSpeech
	SenseNumber  int
	LexFileIndex int

	Definition string
	Examples   []string
	Lemmas     []*Lemma
	SenseKeys  []string

	// FrameIDs and FrameLemmaIDs are parallel; a lemma id of 0 means the
	// frame applies to every lemma.
	FrameIDs      []int
	FrameLemmaIDs []int

	pointers   []Pointer
	forms      map[Pointer]RelatedForm
	attributes map[string]Attribute

	// depth caches hold depth+1; zero means not yet computed.
	minDepth atomic.Int32
	maxDepth atomic.Int32
}

// NewSynset returns a detached synset. It gets an ID once added to a
// Dictionary or overlay.
func NewSynset(pos PartOfSpeech, definition string, examples ...string) *Synset {
	return &Synset{POS: pos, Definition: definition, Examples: examples}
}

// AddLemma appends a lemma named name and returns it.
func (s *Synset) AddLemma(name string) *Lemma {
	l := &Lemma{
		Name:         strings.ReplaceAll(name, " ", "_"),
		POS:          s.POS,
		Synset:       s.ID,
		LexFileIndex: s.LexFileIndex,
	}
	s.Lemmas = append(s.Lemmas, l)
	return l
}

// HeadLemma returns the first lemma, or nil for a stub.
func (s *Synset) HeadLemma() *Lemma {
	if len(s.Lemmas) == 0 {
		return nil
	}
	return s.Lemmas[0]
}

// Name returns the conventional "lemma.pos.NN" identifier.
func (s *Synset) Name() string {
	head := "?"
	if l := s.HeadLemma(); l != nil {
		head = strings.ToLower(l.Name)
	}
	return fmt.Sprintf("%s.%s.%02d", head, s.POS.Tag(), s.SenseNumber)
}

func (s *Synset) String() string { return s.Name() }

// Gloss returns the definition followed by the examples, separated by
// spaces. Overlap measures tokenize this text.
func (s *Synset) Gloss() string {
	if len(s.Examples) == 0 {
		return s.Definition
	}
	parts := make([]string, 0, len(s.Examples)+1)
	if s.Definition != "" {
		parts = append(parts, s.Definition)
	}
	parts = append(parts, s.Examples...)
	return strings.Join(parts, " ")
}

// Related returns the targets of r in insertion order.
func (s *Synset) Related(r Relation) []SynsetID {
	var out []SynsetID
	for _, p := range s.pointers {
		if p.Relation == r {
			out = append(out, p.Target)
		}
	}
	return out
}

// Relations returns the distinct relation types of s in first-seen order.
func (s *Synset) Relations() []Relation {
	var out []Relation
	for _, p := range s.pointers {
		if !slices.Contains(out, p.Relation) {
			out = append(out, p.Relation)
		}
	}
	return out
}

// Pointers returns a copy of every outgoing edge.
func (s *Synset) Pointers() []Pointer {
	return slices.Clone(s.pointers)
}

// NumRelations is the number of outgoing edges over all relation types.
func (s *Synset) NumRelations() int { return len(s.pointers) }

// HasPointer reports whether s links to target through r.
func (s *Synset) HasPointer(r Relation, target SynsetID) bool {
	return slices.Contains(s.pointers, Pointer{r, target})
}

// Link adds an edge to a synset that no Dictionary owns, such as a
// temporary node of an overlay graph. Owned synsets go through
// Dictionary.AddRelation so that reflexive edges and depth caches follow.
func (s *Synset) Link(r Relation, target SynsetID) bool {
	return s.addPointer(r, target)
}

func (s *Synset) addPointer(r Relation, target SynsetID) bool {
	p := Pointer{r, target}
	if slices.Contains(s.pointers, p) {
		return false
	}
	s.pointers = append(s.pointers, p)
	return true
}

func (s *Synset) removePointer(r Relation, target SynsetID) bool {
	p := Pointer{r, target}
	i := slices.Index(s.pointers, p)
	if i < 0 {
		return false
	}
	s.pointers = slices.Delete(s.pointers, i, i+1)
	delete(s.forms, p)
	return true
}

// dropTarget removes every edge pointing at target and returns the
// relations that were removed.
func (s *Synset) dropTarget(target SynsetID) []Relation {
	var removed []Relation
	kept := s.pointers[:0]
	for _, p := range s.pointers {
		if p.Target == target {
			removed = append(removed, p.Relation)
			delete(s.forms, p)
			continue
		}
		kept = append(kept, p)
	}
	s.pointers = kept
	return removed
}

// RelatedForm returns the lemma pair recorded for the edge (r, target).
func (s *Synset) RelatedForm(r Relation, target SynsetID) (RelatedForm, bool) {
	f, ok := s.forms[Pointer{r, target}]
	return f, ok
}

// SetRelatedForm records the lemma pair for the edge (r, target).
func (s *Synset) SetRelatedForm(r Relation, target SynsetID, f RelatedForm) {
	if s.forms == nil {
		s.forms = make(map[Pointer]RelatedForm)
	}
	s.forms[Pointer{r, target}] = f
}

// Attribute returns the attribute stored under name, or nil.
func (s *Synset) Attribute(name string) Attribute {
	return s.attributes[name]
}

// SetAttribute stores a under name, replacing any previous value.
func (s *Synset) SetAttribute(name string, a Attribute) {
	if s.attributes == nil {
		s.attributes = make(map[string]Attribute)
	}
	s.attributes[name] = a
}

// AttributeNames returns the attribute names in sorted order.
func (s *Synset) AttributeNames() []string {
	names := make([]string, 0, len(s.attributes))
	for n := range s.attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Synset) invalidateDepth() {
	s.minDepth.Store(0)
	s.maxDepth.Store(0)
}
