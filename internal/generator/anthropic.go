package generator

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/joestump/ambient-prompt/internal/config"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

type anthropicGenerator struct {
	client       *anthropic.Client
	model        string
	promptCustom string
}

func newAnthropicGenerator(cfg *config.Config) *anthropicGenerator {
	model := cfg.Generator.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	var opts []anthropic.ClientOption
	if cfg.Generator.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Generator.BaseURL))
	}
	return &anthropicGenerator{
		client:       anthropic.NewClient(cfg.Generator.APIKey, opts...),
		model:        model,
		promptCustom: cfg.Generator.Prompt,
	}
}

func (a *anthropicGenerator) Generate(ctx context.Context, seed string) (string, error) {
	prompt, err := renderPrompt(a.promptCustom, PromptData{Seed: seed})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: 256,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}

	return checkModelOutput(seed, resp.Content[0].GetText())
}
