// Command server exposes a WordNet dictionary as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/synsets?lemma=<word>[&pos=n|v|a|r|s]
//	GET  /api/synset?key=<sense key> | ?name=<lemma.pos.NN>
//	GET  /api/similarity?measure=<name>&a=<synset>&b=<synset>
//	GET  /api/path?a=<synset>&b=<synset>
//	GET  /api/hypernym-status?child=<lemma>&ancestor=<lemma>[&pos=]
//	POST /api/disambiguate   body: {"tokens":[{"word":"...","tag":"NN"}],"method":"ppr"}
//	GET  /api/measures
//	GET  /healthz
//	GET  /metrics
//
// Configuration comes from WORDNET_* environment variables (and .env);
// the -data and -addr flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cours-de-latin/wordnet"
	"github.com/cours-de-latin/wordnet/internal/storeuri"
	"github.com/cours-de-latin/wordnet/similarity"
	"github.com/cours-de-latin/wordnet/store"
	"github.com/cours-de-latin/wordnet/wsd"
)

// ---- wiring -------------------------------------------------------------

func newHandler(cfg *config, d *wordnet.Dictionary, measures map[string]similarity.Measure, logger *wordnet.Logger) http.Handler {
	mux := http.NewServeMux()
	route := func(pattern, name string, h http.Handler) {
		mux.Handle(pattern, instrument(name, h))
	}
	route("/api/synsets", "synsets", handleSynsets(d))
	route("/api/synset", "synset", handleSynset(d))
	route("/api/similarity", "similarity", handleSimilarity(d, measures))
	route("/api/path", "path", handlePath(d))
	route("/api/hypernym-status", "hypernym_status", handleHypernymStatus(d))
	route("/api/disambiguate", "disambiguate", handleDisambiguate(wsd.NewFactory(d, logger)))
	route("/api/measures", "measures", handleMeasures(measures))
	mux.Handle("/healthz", handleHealth(d))
	mux.Handle("/metrics", promhttp.Handler())

	var h http.Handler = mux
	h = limit(cfg.RateLimit, cfg.RateBurst, h)
	h = logRequests(logger, h)
	h = withRequestID(h)
	return withCORS(cfg.CORSOrigins, h)
}

// buildMeasures instantiates the configured measures. IC files are read
// from the dictionary's own store.
func buildMeasures(ctx context.Context, cfg *config, d *wordnet.Dictionary, src store.Store) (map[string]similarity.Measure, error) {
	reg := similarity.NewRegistry()
	mc := reg.DefaultConfig()
	if cfg.MeasuresFile != "" {
		data, err := os.ReadFile(cfg.MeasuresFile)
		if err != nil {
			return nil, fmt.Errorf("read measures: %w", err)
		}
		if mc, err = similarity.ParseConfig(data); err != nil {
			return nil, err
		}
	}

	loadIC := func(name string) (*wordnet.InformationContent, error) {
		return d.LoadInformationContent(ctx, src, name)
	}
	env := similarity.Env{Dict: d}
	if cfg.ICFile != "" {
		ic, err := loadIC(cfg.ICFile)
		if err != nil {
			return nil, err
		}
		env.IC = ic
	}
	return reg.Build(mc, env, loadIC, cfg.MeasuresFile == "")
}

// ---- main ---------------------------------------------------------------

func run(ctx context.Context, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger, err := cfg.logger()
	if err != nil {
		return err
	}

	logger.Info("loading dictionary", "location", cfg.Dict)
	src, err := storeuri.Open(ctx, cfg.Dict)
	if err != nil {
		return err
	}
	d, err := wordnet.Load(ctx, src, wordnet.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	synsetsLoaded.Set(float64(d.Len()))

	measures, err := buildMeasures(ctx, cfg, d, src)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, d, measures, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "measures", len(measures))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
