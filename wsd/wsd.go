// Package wsd picks word senses for tagged tokens.
package wsd

import (
	"context"

	"github.com/cours-de-latin/wordnet"
)

// Token is a word with its Penn Treebank tag. An empty tag means the part
// of speech is unknown.
type Token struct {
	Word string `json:"word"`
	Tag  string `json:"tag,omitempty"`
}

// Sense is the synset chosen for the token at Index.
type Sense struct {
	Index  int
	Word   string
	Synset *wordnet.Synset
}

// Key returns the sense key of the lemma of Synset that spells Word, or
// the head lemma's key when none does.
func (s Sense) Key() string {
	word := wordnet.NormalizeLemma(s.Word)
	for _, l := range s.Synset.Lemmas {
		if wordnet.NormalizeLemma(l.Name) == word {
			return l.Key()
		}
	}
	if l := s.Synset.HeadLemma(); l != nil {
		return l.Key()
	}
	return ""
}

// Disambiguator labels a token sequence. Tokens without a known sense are
// left out of the result.
type Disambiguator interface {
	Disambiguate(ctx context.Context, tokens []Token) ([]Sense, error)
}

// Chooser picks a sense for one focus token given the content words around
// it, or returns nil.
type Chooser interface {
	Choose(focus Token, context []Token) *wordnet.Synset
}

// Lexicon finds candidate senses for a word.
type Lexicon interface {
	Synsets(word string, pos wordnet.PartOfSpeech) []*wordnet.Synset
	SynsetsAnyPOS(word string) []*wordnet.Synset
}

// Candidates returns the senses of t for the part of speech of its tag,
// falling back to every part of speech when the tag is missing or gives
// nothing.
func Candidates(lex Lexicon, t Token) []*wordnet.Synset {
	if pos, ok := wordnet.PartOfSpeechFromPenn(t.Tag); ok {
		if senses := lex.Synsets(t.Word, pos); len(senses) > 0 {
			return senses
		}
	}
	return lex.SynsetsAnyPOS(t.Word)
}

// IsContent reports whether t is a noun, verb, adjective or adverb. An
// untagged token counts as content.
func IsContent(t Token) bool {
	if t.Tag == "" {
		return true
	}
	_, ok := wordnet.PartOfSpeechFromPenn(t.Tag)
	return ok
}
