package wsd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/pagerank"
)

type senses struct {
	dict                       *wordnet.Dictionary
	lender, shore, river, cash *wordnet.Synset
}

func newSenses(t *testing.T) *senses {
	t.Helper()
	d := wordnet.New()
	add := func(def string, lemmas ...string) *wordnet.Synset {
		s := wordnet.NewSynset(wordnet.Noun, def)
		for _, l := range lemmas {
			s.AddLemma(l)
		}
		d.AddSynset(s)
		return s
	}
	s := &senses{
		dict:   d,
		lender: add("a financial institution that accepts deposits and channels the money into lending", "bank", "depository_financial_institution"),
		shore:  add("sloping land beside a body of water", "bank"),
		river:  add("a large natural stream of water", "river"),
		cash:   add("the most common medium of exchange", "money"),
	}
	require.NoError(t, d.AddRelation(s.river, wordnet.AlsoSee, s.shore))
	require.NoError(t, d.AddRelation(s.cash, wordnet.AlsoSee, s.lender))
	return s
}

var riverText = []Token{
	{Word: "the", Tag: "DT"},
	{Word: "river", Tag: "NN"},
	{Word: "bank", Tag: "NN"},
	{Word: "flooded", Tag: "VBD"},
}

func TestCandidates(t *testing.T) {
	s := newSenses(t)
	assert.Equal(t, []*wordnet.Synset{s.lender, s.shore}, Candidates(s.dict, Token{Word: "bank", Tag: "NNS"}))
	assert.Equal(t, []*wordnet.Synset{s.lender, s.shore}, Candidates(s.dict, Token{Word: "banks", Tag: "VBZ"}), "falls back to any part of speech")
	assert.Empty(t, Candidates(s.dict, Token{Word: "flooded"}))

	assert.True(t, IsContent(Token{Word: "x"}))
	assert.True(t, IsContent(Token{Word: "x", Tag: "JJ"}))
	assert.False(t, IsContent(Token{Word: "x", Tag: "DT"}))
}

func TestFirstSense(t *testing.T) {
	s := newSenses(t)
	got, err := NewFirstSense(s.dict).Disambiguate(context.Background(), riverText)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Sense{Index: 1, Word: "river", Synset: s.river}, got[0])
	assert.Same(t, s.lender, got[1].Synset)
}

func TestPersonalizedPageRank(t *testing.T) {
	s := newSenses(t)
	w := NewSlidingWindow(NewPersonalizedPageRank(s.dict, pagerank.FullCore(s.dict)))

	got, err := w.Disambiguate(context.Background(), riverText)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Index)
	assert.Same(t, s.shore, got[1].Synset)

	got, err = w.Disambiguate(context.Background(), []Token{{Word: "bank", Tag: "NN"}, {Word: "money", Tag: "NN"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Same(t, s.lender, got[0].Synset)
}

func TestLesk(t *testing.T) {
	s := newSenses(t)
	got, err := NewSlidingWindow(NewLesk(s.dict)).Disambiguate(context.Background(), riverText)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Same(t, s.shore, got[1].Synset)
	assert.Equal(t, "bank%1:00:00::", got[1].Key())
}

type recorder struct {
	contexts map[string][]string
}

func (r *recorder) Choose(focus Token, context []Token) *wordnet.Synset {
	var words []string
	for _, t := range context {
		words = append(words, t.Word)
	}
	r.contexts[focus.Word] = words
	return nil
}

func TestSlidingWindowContext(t *testing.T) {
	rec := &recorder{contexts: map[string][]string{}}
	w := NewSlidingWindow(rec)
	w.Before, w.After = 1, 1

	got, err := w.Disambiguate(context.Background(), []Token{
		{Word: "a", Tag: "NN"},
		{Word: "the", Tag: "DT"},
		{Word: "b", Tag: "VB"},
		{Word: "c", Tag: "RB"},
		{Word: "d", Tag: "JJ"},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {"b", "d"},
		"d": {"c"},
	}, rec.contexts)
}

func TestSlidingWindowCancelled(t *testing.T) {
	s := newSenses(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSlidingWindow(NewLesk(s.dict)).Disambiguate(ctx, riverText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactory(t *testing.T) {
	s := newSenses(t)
	f := NewFactory(s.dict, nil)
	for _, m := range Methods() {
		d, err := f.New(m)
		require.NoError(t, err, m)
		assert.NotNil(t, d)
	}
	_, err := f.New("magic")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
