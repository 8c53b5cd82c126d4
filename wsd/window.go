package wsd

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cours-de-latin/wordnet"
)

const DefaultWindow = 10

// SlidingWindow runs a Chooser over every content word, giving it up to
// Before preceding and After following content words as context.
type SlidingWindow struct {
	Chooser Chooser
	Before  int
	After   int
	Logger  *wordnet.Logger
}

// NewSlidingWindow wraps c with the default window of ten words each side.
func NewSlidingWindow(c Chooser) *SlidingWindow {
	return &SlidingWindow{Chooser: c, Before: DefaultWindow, After: DefaultWindow, Logger: wordnet.NoopLogger()}
}

func (w *SlidingWindow) Disambiguate(ctx context.Context, tokens []Token) ([]Sense, error) {
	start := time.Now()
	log := w.Logger.With("doc", uuid.NewString())

	var content []int
	for i, t := range tokens {
		if IsContent(t) {
			content = append(content, i)
		}
	}

	var out []Sense
	ctxWords := make([]Token, 0, w.Before+w.After)
	for k, idx := range content {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ctxWords = ctxWords[:0]
		for _, j := range content[max(0, k-w.Before):k] {
			ctxWords = append(ctxWords, tokens[j])
		}
		for _, j := range content[k+1 : min(len(content), k+1+w.After)] {
			ctxWords = append(ctxWords, tokens[j])
		}
		if s := w.Chooser.Choose(tokens[idx], ctxWords); s != nil {
			out = append(out, Sense{Index: idx, Word: tokens[idx].Word, Synset: s})
		}
	}
	log.DebugContext(ctx, "disambiguated",
		"tokens", len(tokens),
		"content", len(content),
		"senses", len(out),
		"elapsed", time.Since(start),
	)
	return out, nil
}
