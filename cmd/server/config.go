package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/cours-de-latin/wordnet"
)

type config struct {
	Dict         string   `env:"WORDNET_DICT" envDefault:"dict"`
	Addr         string   `env:"WORDNET_ADDR" envDefault:":8080"`
	ICFile       string   `env:"WORDNET_IC_FILE"`
	MeasuresFile string   `env:"WORDNET_MEASURES_FILE"`
	LogLevel     string   `env:"WORDNET_LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"WORDNET_LOG_FORMAT" envDefault:"text"`
	RateLimit    float64  `env:"WORDNET_RATE_LIMIT" envDefault:"0"`
	RateBurst    int      `env:"WORDNET_RATE_BURST" envDefault:"20"`
	CORSOrigins  []string `env:"WORDNET_CORS_ORIGINS" envSeparator:","`
}

// loadConfig reads .env when present, then the environment, then flags.
func loadConfig(args []string) (*config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fl := flag.NewFlagSet("server", flag.ContinueOnError)
	fl.StringVar(&cfg.Dict, "data", cfg.Dict, "dictionary location (directory or store URI)")
	fl.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	if err := fl.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) logger() (*wordnet.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "json":
		return wordnet.NewJSONLogger(level), nil
	case "text", "":
		return wordnet.NewTextLogger(level), nil
	}
	return nil, fmt.Errorf("log format %q: want text or json", c.LogFormat)
}
