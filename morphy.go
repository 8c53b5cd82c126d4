package wordnet

import "strings"

// detachment is one suffix substitution rule.
type detachment struct {
	suffix, ending string
}

// detachments lists the suffix rules per index slot, tried in order.
var detachments = [numSlots][]detachment{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// BaseForms returns the base forms of word that have synsets for pos.
// Exception lists are consulted first, then suffix detachment rules.
// Nouns ending in "ful" are reduced without the suffix, which is then
// reattached ("boxesful" -> "boxful").
func (d *Dictionary) BaseForms(word string, pos PartOfSpeech) []string {
	if !pos.Valid() {
		return nil
	}
	word = NormalizeLemma(word)
	if word == "" {
		return nil
	}
	slot := pos.slot()

	var out []string
	add := func(form string) {
		if form == "" || len(d.LookupExact(form, pos)) == 0 {
			return
		}
		for _, f := range out {
			if f == form {
				return
			}
		}
		out = append(out, form)
	}

	// 1. exception list
	for _, base := range d.exceptions[slot][word] {
		add(base)
	}

	// 2. the word itself
	add(word)

	// 3. suffix detachment
	stem, tail := word, ""
	if slot == Noun && strings.HasSuffix(word, "ful") && len(word) > 3 {
		stem, tail = word[:len(word)-3], "ful"
	}
	for _, rule := range detachments[slot] {
		if !strings.HasSuffix(stem, rule.suffix) || len(stem) <= len(rule.suffix) {
			continue
		}
		add(stem[:len(stem)-len(rule.suffix)] + rule.ending + tail)
	}
	return out
}

// Synsets returns the synsets of a word form. When the exact form is not
// indexed it tries, in order: spaces joined by underscores, the base
// forms of the word, base forms of the first word of a collocation,
// hyphens in place of spaces and finally the word with hyphens removed.
func (d *Dictionary) Synsets(word string, pos PartOfSpeech) []*Synset {
	if out := d.LookupExact(word, pos); len(out) > 0 {
		return out
	}
	joined := NormalizeLemma(word)
	if out := d.LookupExact(joined, pos); len(out) > 0 {
		return out
	}
	if out := d.lookupBases(joined, pos); len(out) > 0 {
		return out
	}

	// only the first word of a collocation inflects: "looks_after" -> "look_after"
	if head, rest, ok := strings.Cut(joined, "_"); ok {
		for _, base := range d.baseCandidates(head, pos) {
			if out := d.LookupExact(base+"_"+rest, pos); len(out) > 0 {
				return out
			}
		}
	}

	if strings.Contains(joined, "_") {
		if out := d.LookupExact(strings.ReplaceAll(joined, "_", "-"), pos); len(out) > 0 {
			return out
		}
	}
	if strings.Contains(joined, "-") {
		if out := d.LookupExact(strings.ReplaceAll(joined, "-", ""), pos); len(out) > 0 {
			return out
		}
	}
	return nil
}

// SynsetsAnyPOS collects the synsets of word across every part of speech.
func (d *Dictionary) SynsetsAnyPOS(word string) []*Synset {
	var out []*Synset
	for _, pos := range indexed {
		out = append(out, d.Synsets(word, pos)...)
	}
	return out
}

func (d *Dictionary) lookupBases(word string, pos PartOfSpeech) []*Synset {
	var out []*Synset
	for _, base := range d.BaseForms(word, pos) {
		for _, s := range d.LookupExact(base, pos) {
			if !containsSynset(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// baseCandidates applies the detachment rules without requiring the
// result to be indexed on its own.
func (d *Dictionary) baseCandidates(word string, pos PartOfSpeech) []string {
	slot := pos.slot()
	out := append([]string(nil), d.exceptions[slot][word]...)
	for _, rule := range detachments[slot] {
		if strings.HasSuffix(word, rule.suffix) && len(word) > len(rule.suffix) {
			out = append(out, word[:len(word)-len(rule.suffix)]+rule.ending)
		}
	}
	return out
}
