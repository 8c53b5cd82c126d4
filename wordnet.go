// Package wordnet reads, queries, extends and writes dictionaries in the
// WordNet database file layout. A Dictionary holds every synset in an
// arena addressed by SynsetID together with the lemma index, the
// morphological exception lists, the lexicographer file names and the
// verb frame templates.
//
// Read-only queries may run concurrently. Mutations (AddSynset,
// RemoveSynset, ReplaceSynset, Merge, AddRelation, RemoveRelation) must be
// serialized by the caller and must not overlap with readers.
package wordnet

import (
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
)

// lemmaEntry lists the synsets of one lemma per index slot, in sense order.
type lemmaEntry [numSlots][]SynsetID

type lexName struct {
	name string
	pos  int
}

// Dictionary is a loaded WordNet graph.
type Dictionary struct {
	// synsets is the arena; removed synsets leave a nil hole so that
	// handles stay stable.
	synsets []*Synset

	// index maps NormalizeLemma(form) to its synsets.
	index map[string]*lemmaEntry

	// offsets maps each index slot's file offsets to synsets.
	offsets [numSlots]map[int]SynsetID

	senseKeys map[string]SynsetID

	// exceptions maps an inflected form to its base forms per slot.
	exceptions [numSlots]map[string][]string

	lexNames []lexName
	frames   map[int]string

	// maxDepths caches MaxDepth per slot, stored as depth+1.
	maxDepths [numSlots]atomic.Int32

	opts options
}

// New returns an empty dictionary. Synsets are added with AddSynset.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		index:     make(map[string]*lemmaEntry),
		senseKeys: make(map[string]SynsetID),
		frames:    make(map[int]string),
		opts:      buildOptions(opts),
	}
	for i := range d.offsets {
		d.offsets[i] = make(map[int]SynsetID)
		d.exceptions[i] = make(map[string][]string)
	}
	return d
}

// SynsetByID returns the synset with handle id, or nil.
func (d *Dictionary) SynsetByID(id SynsetID) *Synset {
	if int(id) >= len(d.synsets) {
		return nil
	}
	return d.synsets[id]
}

// NextID returns the handle the next added synset will receive. Handles at
// or above it are free for overlay graphs.
func (d *Dictionary) NextID() SynsetID { return SynsetID(len(d.synsets)) }

// Len returns the number of live synsets.
func (d *Dictionary) Len() int {
	n := 0
	for _, s := range d.synsets {
		if s != nil {
			n++
		}
	}
	return n
}

// All returns every live synset in handle order.
func (d *Dictionary) All() []*Synset {
	out := make([]*Synset, 0, len(d.synsets))
	for _, s := range d.synsets {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Lemmas returns every indexed lemma in sorted order.
func (d *Dictionary) Lemmas() []string {
	keys := make([]string, 0, len(d.index))
	for k := range d.index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LookupExact returns the synsets indexed under lemma for pos without
// any morphological fallback. Satellites share the adjective slot.
func (d *Dictionary) LookupExact(lemma string, pos PartOfSpeech) []*Synset {
	if !pos.Valid() {
		return nil
	}
	e := d.index[NormalizeLemma(lemma)]
	if e == nil {
		return nil
	}
	ids := e[pos.slot()]
	out := make([]*Synset, 0, len(ids))
	for _, id := range ids {
		if s := d.SynsetByID(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Lookup addresses one sense: Lookup("dog", Noun, 1).
func (d *Dictionary) Lookup(lemma string, pos PartOfSpeech, sense int) *Synset {
	synsets := d.LookupExact(lemma, pos)
	if sense < 1 || sense > len(synsets) {
		return nil
	}
	return synsets[sense-1]
}

// SynsetByName resolves "lemma.pos.NN" names as produced by Synset.Name.
func (d *Dictionary) SynsetByName(name string) *Synset {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return nil
	}
	sense, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return nil
	}
	rest := name[:i]
	j := strings.LastIndexByte(rest, '.')
	if j <= 0 {
		return nil
	}
	pos, ok := posFromTag(rest[j+1:])
	if !ok {
		return nil
	}
	return d.Lookup(rest[:j], pos, sense)
}

// SynsetAtOffset returns the synset at a data file offset, as of the
// last load or write.
func (d *Dictionary) SynsetAtOffset(pos PartOfSpeech, offset int) *Synset {
	if !pos.Valid() {
		return nil
	}
	id, ok := d.offsets[pos.slot()][offset]
	if !ok {
		return nil
	}
	return d.SynsetByID(id)
}

// SynsetBySenseKey resolves a sense key such as "dog%1:05:00::".
func (d *Dictionary) SynsetBySenseKey(key string) *Synset {
	id, ok := d.senseKeys[strings.ToLower(key)]
	if !ok {
		return nil
	}
	return d.SynsetByID(id)
}

// MaxDepth returns the deepest hypernym chain among synsets of pos.
func (d *Dictionary) MaxDepth(pos PartOfSpeech) int {
	if !pos.Valid() {
		return 0
	}
	slot := pos.slot()
	if v := d.maxDepths[slot].Load(); v > 0 {
		return int(v) - 1
	}
	best := 0
	for _, s := range d.synsets {
		if s == nil || s.POS.slot() != slot {
			continue
		}
		if md := MaxDepth(d, s); md > best {
			best = md
		}
	}
	d.maxDepths[slot].Store(int32(best + 1))
	return best
}

// LexFileName returns the lexicographer file name for index i.
func (d *Dictionary) LexFileName(i int) string {
	if i < 0 || i >= len(d.lexNames) {
		return ""
	}
	return d.lexNames[i].name
}

// Frame returns the verb frame template with number n.
func (d *Dictionary) Frame(n int) string {
	return d.frames[n]
}

// Exceptions returns the base forms listed for an irregular form.
func (d *Dictionary) Exceptions(pos PartOfSpeech, form string) []string {
	if !pos.Valid() {
		return nil
	}
	return d.exceptions[pos.slot()][NormalizeLemma(form)]
}

// AddException registers base as a base form of the irregular form.
func (d *Dictionary) AddException(pos PartOfSpeech, form, base string) {
	if !pos.Valid() {
		return
	}
	m := d.exceptions[pos.slot()]
	form = NormalizeLemma(form)
	base = NormalizeLemma(base)
	for _, b := range m[form] {
		if b == base {
			return
		}
	}
	m[form] = append(m[form], base)
}

// Logger returns the logger the dictionary was configured with.
func (d *Dictionary) Logger() *Logger { return d.opts.logger }

func (d *Dictionary) entry(lemma string) *lemmaEntry {
	e := d.index[lemma]
	if e == nil {
		e = new(lemmaEntry)
		d.index[lemma] = e
	}
	return e
}

// indexAdd appends id to the lemma's slot unless already present and
// returns its 1-based position.
func (d *Dictionary) indexAdd(lemma string, pos PartOfSpeech, id SynsetID) int {
	e := d.entry(NormalizeLemma(lemma))
	slot := pos.slot()
	for i, x := range e[slot] {
		if x == id {
			return i + 1
		}
	}
	e[slot] = append(e[slot], id)
	return len(e[slot])
}

// renumber closes sense number gaps for synsets whose head lemma is key.
func (d *Dictionary) renumber(key string, slot PartOfSpeech) {
	e := d.index[key]
	if e == nil {
		return
	}
	for i, id := range e[slot] {
		if s := d.SynsetByID(id); s != nil && headKey(s) == key {
			s.SenseNumber = i + 1
		}
	}
}

// renumberAll recomputes every sense number from the head lemma's slot.
func (d *Dictionary) renumberAll() {
	for key := range d.index {
		for slot := range numSlots {
			d.renumber(key, PartOfSpeech(slot))
		}
	}
}

func (d *Dictionary) invalidateDepths() {
	for _, s := range d.synsets {
		if s != nil {
			s.invalidateDepth()
		}
	}
	for i := range d.maxDepths {
		d.maxDepths[i].Store(0)
	}
}
