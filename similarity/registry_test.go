package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/wordnet"
)

func TestRegistry(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry()
	assert.Contains(t, r.Names(), "wup")
	assert.Contains(t, r.Names(), "hso")

	m, err := r.New("path", Env{Dict: f.dict})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, m.Similarity(f.cat, f.dog), 1e-9)

	_, err = r.New("nope", Env{Dict: f.dict})
	assert.ErrorIs(t, err, ErrUnknownMeasure)

	_, err = r.New("lin", Env{Dict: f.dict})
	assert.ErrorIs(t, err, ErrNeedsInformationContent)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
measures:
  - type: path
  - name: res-brown
    type: resnik
    ic: ic-brown.dat
`))
	require.NoError(t, err)
	require.Len(t, cfg.Measures, 2)
	assert.Equal(t, "path", cfg.Measures[0].Name)
	assert.Equal(t, "ic-brown.dat", cfg.Measures[1].IC)

	_, err = ParseConfig([]byte("measures:\n  - name: broken\n"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry()
	cfg := &Config{Measures: []MeasureConfig{
		{Name: "path", Type: "path"},
		{Name: "res-brown", Type: "resnik", IC: "ic-brown.dat"},
	}}

	var loaded []string
	measures, err := r.Build(cfg, Env{Dict: f.dict}, func(name string) (*wordnet.InformationContent, error) {
		loaded = append(loaded, name)
		return f.ic(), nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ic-brown.dat"}, loaded)
	assert.Len(t, measures, 2)

	measures, err = r.Build(r.DefaultConfig(), Env{Dict: f.dict}, nil, true)
	require.NoError(t, err)
	assert.NotContains(t, measures, "lin")
	assert.Contains(t, measures, "lesk")

	_, err = r.Build(r.DefaultConfig(), Env{Dict: f.dict}, nil, false)
	assert.ErrorIs(t, err, ErrNeedsInformationContent)
}
