package wsd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/pagerank"
)

var ErrUnknownMethod = errors.New("wsd: unknown method")

const (
	MethodPageRank     = "ppr"
	MethodLesk         = "lesk"
	MethodExtendedLesk = "extended-lesk"
	MethodFirstSense   = "first-sense"
)

// Methods lists the names accepted by Factory.New.
func Methods() []string {
	return []string{MethodPageRank, MethodLesk, MethodExtendedLesk, MethodFirstSense}
}

// Factory builds disambiguators over one dictionary. The PageRank core
// covering the whole dictionary is built on first use and then shared.
type Factory struct {
	dict   *wordnet.Dictionary
	core   func() *pagerank.Core
	logger *wordnet.Logger
}

func NewFactory(d *wordnet.Dictionary, logger *wordnet.Logger) *Factory {
	if logger == nil {
		logger = wordnet.NoopLogger()
	}
	return &Factory{
		dict:   d,
		core:   sync.OnceValue(func() *pagerank.Core { return pagerank.FullCore(d) }),
		logger: logger,
	}
}

// New returns the disambiguator registered as method.
func (f *Factory) New(method string) (Disambiguator, error) {
	var c Chooser
	switch method {
	case MethodFirstSense:
		return NewFirstSense(f.dict), nil
	case MethodPageRank, "":
		c = NewPersonalizedPageRank(f.dict, f.core())
	case MethodLesk:
		c = NewLesk(f.dict)
	case MethodExtendedLesk:
		c = NewExtendedLesk(f.dict)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	w := NewSlidingWindow(c)
	w.Logger = f.logger.With("method", method)
	return w, nil
}
