package wordnet

import "strings"

// lemmaReplacer joins collocations the way index files spell them.
var lemmaReplacer = strings.NewReplacer(" ", "_", "\t", "_")

// glossReplacer keeps a gloss on one data file line.
var glossReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NormalizeLemma returns the index key for a word form: lower case,
// surrounding space trimmed, inner spaces turned into underscores.
func NormalizeLemma(s string) string {
	return lemmaReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// headKey returns the index key of the synset's head lemma, or "" for a stub.
func headKey(s *Synset) string {
	if l := s.HeadLemma(); l != nil {
		return NormalizeLemma(l.Name)
	}
	return ""
}

// tokenize splits a gloss into lower-case whitespace tokens.
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// Tokens exposes the gloss tokenizer used by the overlap measures.
func Tokens(s string) []string { return tokenize(s) }
