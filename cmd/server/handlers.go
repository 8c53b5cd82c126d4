package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/similarity"
	"github.com/cours-de-latin/wordnet/wsd"
)

// ---- JSON response types ------------------------------------------------

type synsetJSON struct {
	Name        string              `json:"name"`
	POS         string              `json:"pos"`
	Offset      int                 `json:"offset"`
	SenseNumber int                 `json:"sense_number"`
	Definition  string              `json:"definition"`
	Examples    []string            `json:"examples,omitempty"`
	Lemmas      []string            `json:"lemmas"`
	SenseKeys   []string            `json:"sense_keys,omitempty"`
	Relations   map[string][]string `json:"relations,omitempty"`
}

type synsetsResponse struct {
	Lemma   string       `json:"lemma"`
	Synsets []synsetJSON `json:"synsets"`
}

type similarityResponse struct {
	Measure string  `json:"measure"`
	A       string  `json:"a"`
	B       string  `json:"b"`
	Score   float64 `json:"score"`
}

type pathResponse struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	Shortest  int      `json:"shortest"`
	Longest   int      `json:"longest"`
	Subsumers []string `json:"subsumers"`
}

type hypernymStatusResponse struct {
	Child    string `json:"child"`
	Ancestor string `json:"ancestor"`
	Status   string `json:"status"`
}

type senseJSON struct {
	Index      int    `json:"index"`
	Word       string `json:"word"`
	Synset     string `json:"synset"`
	SenseKey   string `json:"sense_key"`
	Definition string `json:"definition"`
}

type disambiguateResponse struct {
	Method string      `json:"method"`
	Senses []senseJSON `json:"senses"`
}

type measuresResponse struct {
	Measures []string `json:"measures"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Synsets int    `json:"synsets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toSynsetJSON(s *wordnet.Synset) synsetJSON {
	lemmas := make([]string, 0, len(s.Lemmas))
	for _, l := range s.Lemmas {
		lemmas = append(lemmas, l.String())
	}
	return synsetJSON{
		Name:        s.Name(),
		POS:         s.POS.String(),
		Offset:      s.Offset,
		SenseNumber: s.SenseNumber,
		Definition:  s.Definition,
		Examples:    s.Examples,
		Lemmas:      lemmas,
		SenseKeys:   s.SenseKeys,
	}
}

// toDetailJSON adds the relations of s, keyed by relation name.
func toDetailJSON(g wordnet.Graph, s *wordnet.Synset) synsetJSON {
	out := toSynsetJSON(s)
	out.Relations = make(map[string][]string)
	for _, r := range s.Relations() {
		var names []string
		for _, t := range wordnet.RelatedSynsets(g, s, r) {
			names = append(names, t.Name())
		}
		if len(names) > 0 {
			out.Relations[r.String()] = names
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r.Context()).WarnContext(r.Context(), "encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// synsetParam resolves a "lemma.pos.NN" query parameter.
func synsetParam(d *wordnet.Dictionary, w http.ResponseWriter, r *http.Request, param string) (*wordnet.Synset, bool) {
	name := r.URL.Query().Get(param)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("missing '%s' query parameter", param))
		return nil, false
	}
	s := d.SynsetByName(name)
	if s == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("synset %q not found", name))
		return nil, false
	}
	return s, true
}

// posParam parses an optional part of speech; ok is false after an error
// response.
func posParam(w http.ResponseWriter, r *http.Request, def wordnet.PartOfSpeech) (pos wordnet.PartOfSpeech, set, ok bool) {
	raw := r.URL.Query().Get("pos")
	if raw == "" {
		return def, false, true
	}
	pos, valid := wordnet.ParsePartOfSpeech(raw)
	if !valid {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown part of speech %q", raw))
		return 0, false, false
	}
	return pos, true, true
}

// ---- handlers -----------------------------------------------------------

func handleSynsets(d *wordnet.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		lemma := r.URL.Query().Get("lemma")
		if lemma == "" {
			writeError(w, r, http.StatusBadRequest, "missing 'lemma' query parameter")
			return
		}
		pos, set, ok := posParam(w, r, wordnet.Noun)
		if !ok {
			return
		}
		var found []*wordnet.Synset
		if set {
			found = d.Synsets(lemma, pos)
		} else {
			found = d.SynsetsAnyPOS(lemma)
		}

		out := make([]synsetJSON, 0, len(found))
		for _, s := range found {
			out = append(out, toSynsetJSON(s))
		}
		status := http.StatusOK
		if len(out) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(w, r, status, synsetsResponse{Lemma: lemma, Synsets: out})
	}
}

func handleSynset(d *wordnet.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		var s *wordnet.Synset
		switch {
		case q.Get("key") != "":
			s = d.SynsetBySenseKey(q.Get("key"))
		case q.Get("name") != "":
			s = d.SynsetByName(q.Get("name"))
		default:
			writeError(w, r, http.StatusBadRequest, "missing 'key' or 'name' query parameter")
			return
		}
		if s == nil {
			writeError(w, r, http.StatusNotFound, "synset not found")
			return
		}
		writeJSON(w, r, http.StatusOK, toDetailJSON(d, s))
	}
}

func handleSimilarity(d *wordnet.Dictionary, measures map[string]similarity.Measure) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		name := r.URL.Query().Get("measure")
		if name == "" {
			name = "path"
		}
		m, ok := measures[name]
		if !ok {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown measure %q", name))
			return
		}
		a, ok := synsetParam(d, w, r, "a")
		if !ok {
			return
		}
		b, ok := synsetParam(d, w, r, "b")
		if !ok {
			return
		}
		writeJSON(w, r, http.StatusOK, similarityResponse{
			Measure: name,
			A:       a.Name(),
			B:       b.Name(),
			Score:   m.Similarity(a, b),
		})
	}
}

func handlePath(d *wordnet.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		a, ok := synsetParam(d, w, r, "a")
		if !ok {
			return
		}
		b, ok := synsetParam(d, w, r, "b")
		if !ok {
			return
		}
		subsumers := []string{}
		for _, s := range wordnet.LowestCommonHypernyms(d, a, b) {
			subsumers = append(subsumers, s.Name())
		}
		writeJSON(w, r, http.StatusOK, pathResponse{
			A:         a.Name(),
			B:         b.Name(),
			Shortest:  wordnet.ShortestPathDistance(d, a, b),
			Longest:   wordnet.LongestPathDistance(d, a, b),
			Subsumers: subsumers,
		})
	}
}

func handleHypernymStatus(d *wordnet.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		child, ancestor := q.Get("child"), q.Get("ancestor")
		if child == "" || ancestor == "" {
			writeError(w, r, http.StatusBadRequest, "missing 'child' or 'ancestor' query parameter")
			return
		}
		pos, _, ok := posParam(w, r, wordnet.Noun)
		if !ok {
			return
		}
		writeJSON(w, r, http.StatusOK, hypernymStatusResponse{
			Child:    child,
			Ancestor: ancestor,
			Status:   d.HypernymStatus(child, ancestor, pos).String(),
		})
	}
}

func handleDisambiguate(f *wsd.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, r, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Tokens []wsd.Token `json:"tokens"`
			Method string      `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Tokens) == 0 {
			writeError(w, r, http.StatusBadRequest, "body must be JSON with a non-empty 'tokens' field")
			return
		}
		if body.Method == "" {
			body.Method = wsd.MethodPageRank
		}
		dis, err := f.New(body.Method)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		senses, err := dis.Disambiguate(r.Context(), body.Tokens)
		if err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err.Error())
			return
		}

		out := make([]senseJSON, 0, len(senses))
		for _, s := range senses {
			out = append(out, senseJSON{
				Index:      s.Index,
				Word:       s.Word,
				Synset:     s.Synset.Name(),
				SenseKey:   s.Key(),
				Definition: s.Synset.Definition,
			})
		}
		writeJSON(w, r, http.StatusOK, disambiguateResponse{Method: body.Method, Senses: out})
	}
}

func handleMeasures(measures map[string]similarity.Measure) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, r, http.StatusMethodNotAllowed, "GET required")
			return
		}
		names := make([]string, 0, len(measures))
		for name := range measures {
			names = append(names, name)
		}
		sort.Strings(names)
		writeJSON(w, r, http.StatusOK, measuresResponse{Measures: names})
	}
}

func handleHealth(d *wordnet.Dictionary) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Synsets: d.Len()})
	}
}
