// Package generator turns a seed concept into an ambient-music composition prompt.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joestump/ambient-prompt/internal/config"
)

// ErrSeedMissing is returned by model-backed generators whose output does not
// contain the seed text.
var ErrSeedMissing = errors.New("generated prompt does not contain the seed concept")

// Generator produces one prompt for a non-empty seed. Any returned prompt is
// non-empty and contains the seed verbatim.
type Generator interface {
	Generate(ctx context.Context, seed string) (string, error)
}

// New creates a Generator based on the config. An empty provider selects the
// template generator over catalog.Templates.
func New(cfg *config.Config, catalog *Catalog) (Generator, error) {
	switch cfg.Generator.Provider {
	case "", "template":
		return NewTemplateGenerator(catalog.Templates)
	case "anthropic":
		return newAnthropicGenerator(cfg), nil
	case "openai", "openai-compatible":
		return newOpenAIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %q", cfg.Generator.Provider)
	}
}

// checkModelOutput normalizes text returned by a model and enforces the
// generator contract on it.
func checkModelOutput(seed, text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, "\"") && strings.HasSuffix(text, "\"") {
		// Models often wrap the whole reply in quotes; keep them if the seed needs them.
		if inner := strings.TrimSpace(text[1 : len(text)-1]); strings.Contains(inner, seed) {
			text = inner
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty prompt from model")
	}
	if !strings.Contains(text, seed) {
		return "", ErrSeedMissing
	}
	return text, nil
}
