package similarity

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/wordnet"
)

var (
	ErrUnknownMeasure = errors.New("similarity: unknown measure")
	// ErrNeedsInformationContent is returned when an IC measure is built
	// without a frequency table.
	ErrNeedsInformationContent = errors.New("similarity: measure needs information content")
)

// Env carries what a factory may need to build a measure.
type Env struct {
	Dict *wordnet.Dictionary
	IC   *wordnet.InformationContent
}

// Factory builds a measure from its environment.
type Factory func(env Env) (Measure, error)

// Registry maps measure names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in measures.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("path", func(env Env) (Measure, error) { return NewPath(env.Dict), nil })
	r.Register("lch", func(env Env) (Measure, error) { return NewLeacockChodorow(env.Dict), nil })
	r.Register("lch-scaled", func(env Env) (Measure, error) { return NewScaledLeacockChodorow(env.Dict), nil })
	r.Register("wup", func(env Env) (Measure, error) { return NewWuPalmer(env.Dict), nil })
	r.Register("resnik", func(env Env) (Measure, error) {
		if env.IC == nil {
			return nil, fmt.Errorf("resnik: %w", ErrNeedsInformationContent)
		}
		return NewResnik(env.Dict, env.IC), nil
	})
	r.Register("lin", func(env Env) (Measure, error) {
		if env.IC == nil {
			return nil, fmt.Errorf("lin: %w", ErrNeedsInformationContent)
		}
		return NewLin(env.Dict, env.IC), nil
	})
	r.Register("lesk", func(Env) (Measure, error) { return NewLesk(), nil })
	r.Register("extended-lesk", func(env Env) (Measure, error) { return NewExtendedLesk(env.Dict), nil })
	r.Register("hso", func(env Env) (Measure, error) { return NewHirstStOnge(env.Dict), nil })
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New builds the measure registered as name.
func (r *Registry) New(name string, env Env) (Measure, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeasure, name)
	}
	return f(env)
}

// Names lists the registered measures in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Config names a set of measures to build, each with an optional
// information content file of its own.
//
//	measures:
//	  - name: resnik-brown
//	    type: resnik
//	    ic: ic-brown.dat
type Config struct {
	Measures []MeasureConfig `yaml:"measures"`
}

type MeasureConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	IC   string `yaml:"ic,omitempty"`
}

// ParseConfig decodes a YAML measure configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse measures: %w", err)
	}
	for i, m := range cfg.Measures {
		if m.Type == "" {
			return nil, fmt.Errorf("parse measures: entry %d has no type", i)
		}
		if m.Name == "" {
			cfg.Measures[i].Name = m.Type
		}
	}
	return &cfg, nil
}

// DefaultConfig configures every registered measure under its own name.
func (r *Registry) DefaultConfig() *Config {
	cfg := &Config{}
	for _, name := range r.Names() {
		cfg.Measures = append(cfg.Measures, MeasureConfig{Name: name, Type: name})
	}
	return cfg
}

// Build instantiates every configured measure. loadIC resolves the "ic"
// entry of a measure and may be nil when none is used. Measures that need
// information content but have none are skipped when skipMissing is set.
func (r *Registry) Build(cfg *Config, env Env, loadIC func(name string) (*wordnet.InformationContent, error), skipMissing bool) (map[string]Measure, error) {
	out := make(map[string]Measure, len(cfg.Measures))
	for _, mc := range cfg.Measures {
		e := env
		if mc.IC != "" {
			if loadIC == nil {
				return nil, fmt.Errorf("measure %s: no loader for %s", mc.Name, mc.IC)
			}
			ic, err := loadIC(mc.IC)
			if err != nil {
				return nil, fmt.Errorf("measure %s: %w", mc.Name, err)
			}
			e.IC = ic
		}
		m, err := r.New(mc.Type, e)
		if errors.Is(err, ErrNeedsInformationContent) && skipMissing {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", mc.Name, err)
		}
		out[mc.Name] = m
	}
	return out, nil
}
