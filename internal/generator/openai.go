package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/joestump/ambient-prompt/internal/config"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiGenerator struct {
	client       *openai.Client
	model        string
	promptCustom string
}

func newOpenAIGenerator(cfg *config.Config) *openaiGenerator {
	model := cfg.Generator.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	clientCfg := openai.DefaultConfig(cfg.Generator.APIKey)
	if cfg.Generator.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.Generator.BaseURL, "/")
	}
	return &openaiGenerator{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        model,
		promptCustom: cfg.Generator.Prompt,
	}
}

func (o *openaiGenerator) Generate(ctx context.Context, seed string) (string, error) {
	prompt, err := renderPrompt(o.promptCustom, PromptData{Seed: seed})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 256,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return checkModelOutput(seed, resp.Choices[0].Message.Content)
}
