package wordnet

import (
	"fmt"
	"strings"
)

// Lemma is one surface form of a synset.
type Lemma struct {
	// Name is the word form as written in the data file, with
	// underscores joining collocations ("domestic_dog").
	Name string

	POS PartOfSpeech

	// Synset is the handle of the owning synset.
	Synset SynsetID

	LexFileName  string
	LexFileIndex int

	// LexicalID distinguishes identical names within one lexicographer file.
	LexicalID int

	// Marker is the adjective syntactic marker: "a", "p" or "ip".
	Marker string

	// Frames holds the verb frame sentences with "----" replaced by Name.
	Frames []string
}

// Key identifies the lemma among the lemmas of its synset:
// lemma%ssType:lexFile:lexID::
func (l *Lemma) Key() string {
	return fmt.Sprintf("%s%%%d:%02d:%02d::",
		strings.ToLower(l.Name), l.POS.ssType(), l.LexFileIndex, l.LexicalID)
}

// String returns the name with underscores turned into spaces.
func (l *Lemma) String() string {
	return strings.ReplaceAll(l.Name, "_", " ")
}

var markers = []string{"(ip)", "(a)", "(p)"}

// splitMarker separates an adjective marker from a data file word:
// "galore(ip)" -> "galore", "ip".
func splitMarker(word string) (string, string) {
	for _, m := range markers {
		if strings.HasSuffix(word, m) {
			return word[:len(word)-len(m)], m[1 : len(m)-1]
		}
	}
	return word, ""
}

// parseSenseKey splits a sense key into its lemma and synset type.
// Returns ok=false when the key is malformed.
func parseSenseKey(key string) (lemma string, ssType int, ok bool) {
	i := strings.IndexByte(key, '%')
	if i <= 0 || i+1 >= len(key) {
		return "", 0, false
	}
	c := key[i+1]
	if c < '1' || c > '5' {
		return "", 0, false
	}
	return key[:i], int(c - '0'), true
}
