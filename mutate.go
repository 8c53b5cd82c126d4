package wordnet

import (
	"fmt"
	"slices"
)

// AddSynset places s in the arena, indexes its lemmas and sense keys and
// returns its handle. A zero SenseNumber is derived from the head lemma.
func (d *Dictionary) AddSynset(s *Synset) SynsetID {
	d.place(s)
	for _, l := range s.Lemmas {
		pos := d.indexAdd(l.Name, s.POS, s.ID)
		if s.SenseNumber == 0 && l == s.Lemmas[0] {
			s.SenseNumber = pos
		}
	}
	return s.ID
}

// place puts s in the arena and registers its sense keys without
// touching the lemma index.
func (d *Dictionary) place(s *Synset) {
	s.ID = SynsetID(len(d.synsets))
	d.synsets = append(d.synsets, s)
	for _, l := range s.Lemmas {
		l.Synset = s.ID
		l.POS = s.POS
	}
	for _, k := range s.SenseKeys {
		d.senseKeys[k] = s.ID
	}
}

// AddLemma attaches a new lemma to a synset already in the dictionary
// and indexes it.
func (d *Dictionary) AddLemma(s *Synset, name string) (*Lemma, error) {
	if err := d.owns(s); err != nil {
		return nil, err
	}
	for _, l := range s.Lemmas {
		if NormalizeLemma(l.Name) == NormalizeLemma(name) {
			return l, nil
		}
	}
	l := s.AddLemma(name)
	pos := d.indexAdd(l.Name, s.POS, s.ID)
	if len(s.Lemmas) == 1 {
		s.SenseNumber = pos
	}
	return l, nil
}

// AddRelation links src to dst through r and, when r has a reflexive
// counterpart, dst back to src.
func (d *Dictionary) AddRelation(src *Synset, r Relation, dst *Synset) error {
	if err := d.owns(src); err != nil {
		return err
	}
	if err := d.owns(dst); err != nil {
		return err
	}
	src.addPointer(r, dst.ID)
	if rev, ok := r.Reflexive(); ok {
		dst.addPointer(rev, src.ID)
	}
	if isParentRelation(r) {
		d.invalidateDepths()
	}
	return nil
}

// RemoveRelation undoes AddRelation. Missing edges are ignored.
func (d *Dictionary) RemoveRelation(src *Synset, r Relation, dst *Synset) error {
	if err := d.owns(src); err != nil {
		return err
	}
	if err := d.owns(dst); err != nil {
		return err
	}
	src.removePointer(r, dst.ID)
	if rev, ok := r.Reflexive(); ok {
		dst.removePointer(rev, src.ID)
	}
	if isParentRelation(r) {
		d.invalidateDepths()
	}
	return nil
}

// RemoveSynset deletes s, every edge pointing at it and its lemma index
// entries. Trailing senses of affected lemmas are renumbered.
func (d *Dictionary) RemoveSynset(s *Synset) error {
	if err := d.owns(s); err != nil {
		return err
	}
	for _, o := range d.synsets {
		if o != nil && o != s {
			o.dropTarget(s.ID)
		}
	}
	d.rewriteIndex(s, nil)
	d.detach(s)
	d.invalidateDepths()
	return nil
}

// ReplaceSynset puts repl in the place of old: lemma index positions,
// incoming and outgoing edges and sense keys move to repl, and old leaves
// the dictionary. A repl that is not yet a member keeps old's sense
// positions and sense number.
func (d *Dictionary) ReplaceSynset(old, repl *Synset) error {
	if err := d.owns(old); err != nil {
		return err
	}
	if old == repl {
		return nil
	}
	if old.POS != repl.POS {
		return fmt.Errorf("%w: replace %s with %s", ErrPartOfSpeechMismatch, old.Name(), repl.Name())
	}
	if d.owns(repl) != nil {
		// a newcomer takes old's place in every lemma slot
		d.place(repl)
		repl.SenseNumber = old.SenseNumber
	}

	d.rewriteIndex(old, repl)
	d.redirect(old, repl)
	for _, p := range old.pointers {
		if p.Target == repl.ID || p.Target == old.ID {
			continue
		}
		if repl.addPointer(p.Relation, p.Target) {
			if f, ok := old.forms[p]; ok {
				repl.SetRelatedForm(p.Relation, p.Target, f)
			}
		}
	}
	if repl.Offset == 0 {
		repl.Offset = old.Offset
	}
	d.moveSenseKeys(old, repl)
	if id, ok := d.offsets[old.POS.slot()][old.Offset]; ok && id == old.ID {
		d.offsets[old.POS.slot()][old.Offset] = repl.ID
	}
	d.synsets[old.ID] = nil
	d.invalidateDepths()
	return nil
}

// Merge folds b into a: lemmas, examples, gloss, attributes, verb frames
// and edges. Edges pointing at b are redirected to a, self-loops are
// dropped and b leaves the dictionary.
func (d *Dictionary) Merge(a, b *Synset) error {
	if err := d.owns(a); err != nil {
		return err
	}
	if err := d.owns(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	if a.POS != b.POS {
		return fmt.Errorf("%w: merge %s into %s", ErrPartOfSpeechMismatch, b.Name(), a.Name())
	}

	// lemma positions of b's lemmas inside a, for frame remapping
	remap := make([]int, len(b.Lemmas))
	for i, l := range b.Lemmas {
		j := slices.IndexFunc(a.Lemmas, func(x *Lemma) bool {
			return NormalizeLemma(x.Name) == NormalizeLemma(l.Name)
		})
		if j < 0 {
			l.Synset = a.ID
			l.POS = a.POS
			a.Lemmas = append(a.Lemmas, l)
			j = len(a.Lemmas) - 1
		}
		remap[i] = j + 1
	}
	for i, f := range b.FrameIDs {
		w := b.FrameLemmaIDs[i]
		if w > 0 && w <= len(remap) {
			w = remap[w-1]
		}
		a.FrameIDs = append(a.FrameIDs, f)
		a.FrameLemmaIDs = append(a.FrameLemmaIDs, w)
	}

	for _, ex := range b.Examples {
		if !slices.Contains(a.Examples, ex) {
			a.Examples = append(a.Examples, ex)
		}
	}
	switch {
	case a.Definition == "":
		a.Definition = b.Definition
	case b.Definition != "" && b.Definition != a.Definition:
		a.Definition += "; " + b.Definition
	}

	for _, name := range b.AttributeNames() {
		other := b.attributes[name]
		if cur := a.Attribute(name); cur != nil {
			a.SetAttribute(name, cur.Merge(other))
		} else {
			a.SetAttribute(name, other)
		}
	}

	for _, p := range b.pointers {
		if p.Target == a.ID || p.Target == b.ID {
			continue
		}
		if a.addPointer(p.Relation, p.Target) {
			if f, ok := b.forms[p]; ok {
				a.SetRelatedForm(p.Relation, p.Target, f)
			}
		}
	}
	d.redirect(b, a)
	d.rewriteIndex(b, a)
	d.moveSenseKeys(b, a)
	d.detach(b)
	d.invalidateDepths()
	return nil
}

// owns reports an error unless s is a live member of d.
func (d *Dictionary) owns(s *Synset) error {
	if s == nil || d.SynsetByID(s.ID) != s {
		return ErrUnknownSynset
	}
	return nil
}

// redirect points every edge aimed at from towards to instead. Edges
// owned by to itself would become self-loops and are dropped.
func (d *Dictionary) redirect(from, to *Synset) {
	for _, o := range d.synsets {
		if o == nil || o == from {
			continue
		}
		rels := o.dropTarget(from.ID)
		if o == to {
			continue
		}
		for _, r := range rels {
			o.addPointer(r, to.ID)
		}
	}
}

// rewriteIndex swaps old for repl in every lemma slot listing old. When
// the slot already lists repl, or repl is nil, old's entry is dropped and
// the remaining senses renumbered.
func (d *Dictionary) rewriteIndex(old, repl *Synset) {
	slot := old.POS.slot()
	for key, e := range d.index {
		i := slices.Index(e[slot], old.ID)
		if i < 0 {
			continue
		}
		if repl == nil || slices.Contains(e[slot], repl.ID) {
			e[slot] = slices.Delete(e[slot], i, i+1)
		} else {
			e[slot][i] = repl.ID
		}
		if len(e[0])+len(e[1])+len(e[2])+len(e[3]) == 0 {
			delete(d.index, key)
			continue
		}
		d.renumber(key, slot)
	}
	if repl != nil {
		// repl may carry lemmas old never had
		for _, l := range repl.Lemmas {
			d.indexAdd(l.Name, repl.POS, repl.ID)
		}
		d.renumber(headKey(repl), slot)
	}
}

func (d *Dictionary) moveSenseKeys(from, to *Synset) {
	for _, k := range from.SenseKeys {
		d.senseKeys[k] = to.ID
		if !slices.Contains(to.SenseKeys, k) {
			to.SenseKeys = append(to.SenseKeys, k)
		}
	}
	from.SenseKeys = nil
}

// detach drops s from the arena, the sense key map and the offset map.
func (d *Dictionary) detach(s *Synset) {
	for _, k := range s.SenseKeys {
		if d.senseKeys[k] == s.ID {
			delete(d.senseKeys, k)
		}
	}
	slot := s.POS.slot()
	if id, ok := d.offsets[slot][s.Offset]; ok && id == s.ID {
		delete(d.offsets[slot], s.Offset)
	}
	d.synsets[s.ID] = nil
}
