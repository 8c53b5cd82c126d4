package wordnet

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptDictionary reports a dictionary file that cannot be
	// reconciled with the rest of the directory, such as a data line
	// whose offset no index file lists.
	ErrCorruptDictionary = errors.New("wordnet: corrupt dictionary")

	// ErrInformationContentMismatch reports an information content file
	// built against a different dictionary version.
	ErrInformationContentMismatch = errors.New("wordnet: information content does not match dictionary")

	// ErrPartOfSpeechMismatch is returned by Merge and ReplaceSynset.
	ErrPartOfSpeechMismatch = errors.New("wordnet: part of speech mismatch")

	// ErrUnknownSynset is returned when a synset does not belong to the dictionary.
	ErrUnknownSynset = errors.New("wordnet: unknown synset")
)

// ParseError locates a problem in a dictionary file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// corrupt wraps ErrCorruptDictionary with a position and a message.
func corrupt(file string, line int, format string, args ...any) error {
	return &ParseError{
		File: file,
		Line: line,
		Err:  fmt.Errorf("%w: %s", ErrCorruptDictionary, fmt.Sprintf(format, args...)),
	}
}
