package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/similarity"
)

func testDictionary(t *testing.T) *wordnet.Dictionary {
	t.Helper()
	d := wordnet.New()
	add := func(lemma, def string) *wordnet.Synset {
		s := wordnet.NewSynset(wordnet.Noun, def)
		s.AddLemma(lemma)
		d.AddSynset(s)
		return s
	}
	entity := add("entity", "that which exists")
	animal := add("animal", "a living organism that moves")
	cat := add("cat", "a small domesticated feline animal")
	dog := add("dog", "a domesticated canine animal")
	require.NoError(t, d.AddRelation(animal, wordnet.Hypernym, entity))
	require.NoError(t, d.AddRelation(cat, wordnet.Hypernym, animal))
	require.NoError(t, d.AddRelation(dog, wordnet.Hypernym, animal))
	return d
}

func testServer(t *testing.T, cfg *config) *httptest.Server {
	t.Helper()
	d := testDictionary(t)
	measures, err := similarity.NewRegistry().Build(similarity.NewRegistry().DefaultConfig(), similarity.Env{Dict: d}, nil, true)
	require.NoError(t, err)
	srv := httptest.NewServer(newHandler(cfg, d, measures, wordnet.NoopLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestSynsets(t *testing.T) {
	srv := testServer(t, &config{})

	var body synsetsResponse
	resp := getJSON(t, srv.URL+"/api/synsets?lemma=cats&pos=n", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Synsets, 1)
	assert.Equal(t, "cat.n.01", body.Synsets[0].Name)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	resp = getJSON(t, srv.URL+"/api/synsets?lemma=unicorn", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/synsets?lemma=cat&pos=x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/synsets", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSynsetDetail(t *testing.T) {
	srv := testServer(t, &config{})

	var body synsetJSON
	resp := getJSON(t, srv.URL+"/api/synset?name=cat.n.01", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"animal.n.01"}, body.Relations["hypernym"])

	resp = getJSON(t, srv.URL+"/api/synset?name=cat.n.07", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSimilarityAndPath(t *testing.T) {
	srv := testServer(t, &config{})

	var sim similarityResponse
	resp := getJSON(t, srv.URL+"/api/similarity?measure=path&a=cat.n.01&b=dog.n.01", &sim)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 1.0/3, sim.Score, 1e-9)

	resp = getJSON(t, srv.URL+"/api/similarity?measure=nope&a=cat.n.01&b=dog.n.01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/similarity?measure=lin&a=cat.n.01&b=dog.n.01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "lin needs information content")

	var path pathResponse
	resp = getJSON(t, srv.URL+"/api/path?a=cat.n.01&b=dog.n.01", &path)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, path.Shortest)
	assert.Equal(t, []string{"animal.n.01"}, path.Subsumers)
}

func TestHypernymStatus(t *testing.T) {
	srv := testServer(t, &config{})

	var body hypernymStatusResponse
	getJSON(t, srv.URL+"/api/hypernym-status?child=cat&ancestor=animal", &body)
	assert.Equal(t, "KNOWN_HYPERNYM", body.Status)

	getJSON(t, srv.URL+"/api/hypernym-status?child=cat&ancestor=dog", &body)
	assert.Equal(t, "KNOWN_NON_HYPERNYM", body.Status)
}

func TestDisambiguate(t *testing.T) {
	srv := testServer(t, &config{})

	resp, err := http.Post(srv.URL+"/api/disambiguate", "application/json",
		strings.NewReader(`{"tokens":[{"word":"the","tag":"DT"},{"word":"cats","tag":"NNS"}],"method":"first-sense"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body disambiguateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Senses, 1)
	assert.Equal(t, 1, body.Senses[0].Index)
	assert.Equal(t, "cat.n.01", body.Senses[0].Synset)

	resp2, err := http.Post(srv.URL+"/api/disambiguate", "application/json",
		strings.NewReader(`{"tokens":[{"word":"cat"}],"method":"magic"}`))
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	resp3 := getJSON(t, srv.URL+"/api/disambiguate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp3.StatusCode)
}

func TestMeasuresAndHealth(t *testing.T) {
	srv := testServer(t, &config{})

	var m measuresResponse
	getJSON(t, srv.URL+"/api/measures", &m)
	assert.Contains(t, m.Measures, "wup")
	assert.NotContains(t, m.Measures, "resnik")

	var h healthResponse
	getJSON(t, srv.URL+"/healthz", &h)
	assert.Equal(t, healthResponse{Status: "ok", Synsets: 4}, h)
}

func TestRateLimit(t *testing.T) {
	srv := testServer(t, &config{RateLimit: 0.001, RateBurst: 1})

	first := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, first.StatusCode)
	second := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestRequestIDPropagates(t *testing.T) {
	srv := testServer(t, &config{})
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("WORDNET_DICT", "s3://bucket/wn")
	t.Setenv("WORDNET_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("WORDNET_RATE_LIMIT", "5")

	cfg, err := loadConfig([]string{"-addr", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/wn", cfg.Dict)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5.0, cfg.RateLimit)

	cfg, err = loadConfig([]string{"-data", "/srv/dict"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/dict", cfg.Dict)

	_, err = (&config{LogLevel: "loud"}).logger()
	assert.Error(t, err)
	_, err = (&config{LogLevel: "debug", LogFormat: "xml"}).logger()
	assert.Error(t, err)
}

func TestEncodeFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := wordnet.NewLogger(slog.NewTextHandler(&buf, nil))
	h := withRequestID(logRequests(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]float64{"score": math.Inf(1)})
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/similarity", nil)
	req.Header.Set(requestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "encode response")
	assert.Contains(t, out, "request_id=req-42")
}
