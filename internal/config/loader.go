package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if NAMEDECK_CONFIG is set
//  3. env (prefix NAMEDECK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("NAMEDECK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Environment variables: NAMEDECK_ADDR, NAMEDECK_DB_PATH, ...
	// Keys map to the koanf tags on the struct, underscores preserved.
	envProvider := env.Provider("NAMEDECK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "namedeck_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch {
	case cfg.Addr == "":
		return nil, ErrEmptyAddr
	case len(cfg.Reviewers) == 0:
		return nil, ErrEmptyRoster
	case cfg.DefaultLimit < 1 || cfg.MaxLimit < cfg.DefaultLimit:
		return nil, ErrBadLimits
	}
	return &cfg, nil
}
