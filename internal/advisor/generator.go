package advisor

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextGenerator is the contract the orchestrator has with the generative
// text service. Configured reports whether a model credential was ever
// supplied; Generate performs one outbound completion call.
type TextGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMGenerator adapts a langchaingo model to the TextGenerator contract.
// It is initialized once at startup and safe for concurrent reuse.
type LLMGenerator struct {
	model llms.LLM
}

// NewLLMGenerator initializes an OpenAI-backed generator. An empty API key
// yields an unconfigured generator rather than an error; the orchestrator
// degrades to canned responses in that case.
func NewLLMGenerator(apiKey, modelName string) (*LLMGenerator, error) {
	if apiKey == "" {
		return &LLMGenerator{}, nil
	}

	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI model: %w", err)
	}

	return &LLMGenerator{model: model}, nil
}

// Configured reports whether a model is available for text generation
func (g *LLMGenerator) Configured() bool {
	return g != nil && g.model != nil
}

// Generate runs a single completion for the prompt
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("no generative model configured")
	}

	text, err := g.model.Call(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	return text, nil
}
