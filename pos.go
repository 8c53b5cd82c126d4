package wordnet

import "strings"

// PartOfSpeech identifies the syntactic category of a synset.
type PartOfSpeech int

const (
	Noun PartOfSpeech = iota
	Verb
	Adjective
	Adverb
	AdjectiveSatellite
)

// numSlots is the number of lemma index slots. Satellites share the
// adjective slot.
const numSlots = 4

// indexed lists the parts of speech that own an index/data file pair.
var indexed = [numSlots]PartOfSpeech{Noun, Verb, Adjective, Adverb}

var (
	posTags     = [...]string{"n", "v", "a", "r", "s"}
	posNames    = [...]string{"noun", "verb", "adjective", "adverb", "adjective satellite"}
	posSuffixes = [...]string{"noun", "verb", "adj", "adv", "adj"}
)

// Tag returns the single letter used in dictionary files ("n", "v", "a", "r", "s").
func (p PartOfSpeech) Tag() string {
	if !p.Valid() {
		return "?"
	}
	return posTags[p]
}

func (p PartOfSpeech) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return posNames[p]
}

// Suffix returns the file suffix of the index and data files holding p.
func (p PartOfSpeech) Suffix() string {
	if !p.Valid() {
		return ""
	}
	return posSuffixes[p]
}

// Valid reports whether p is one of the five known parts of speech.
func (p PartOfSpeech) Valid() bool {
	return p >= Noun && p <= AdjectiveSatellite
}

// slot maps p onto its lemma index slot.
func (p PartOfSpeech) slot() PartOfSpeech {
	if p == AdjectiveSatellite {
		return Adjective
	}
	return p
}

// ssType is the numeric synset type used in sense keys (1 = noun ... 5 = satellite).
func (p PartOfSpeech) ssType() int {
	return int(p) + 1
}

// ParsePartOfSpeech accepts a file tag ("n"), a name ("noun") or a
// file suffix ("adj").
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range posTags {
		if s == posTags[i] || s == posNames[i] || s == posSuffixes[i] {
			return PartOfSpeech(i), true
		}
	}
	if s == "satellite" {
		return AdjectiveSatellite, true
	}
	return 0, false
}

// posFromTag parses the single letter POS column of data and index files.
func posFromTag(tag string) (PartOfSpeech, bool) {
	for i, t := range posTags {
		if t == tag {
			return PartOfSpeech(i), true
		}
	}
	return 0, false
}

// PartOfSpeechFromPenn maps a Penn Treebank tag onto a part of speech.
// Only tags starting with N, V, J or R are content words.
func PartOfSpeechFromPenn(tag string) (PartOfSpeech, bool) {
	if tag == "" {
		return 0, false
	}
	switch tag[0] {
	case 'N':
		return Noun, true
	case 'V':
		return Verb, true
	case 'J':
		return Adjective, true
	case 'R':
		return Adverb, true
	}
	return 0, false
}
