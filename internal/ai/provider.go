package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hailem/recallbox/internal/logger"
)

// ErrUnavailable is returned when the model backend cannot be reached or
// rejects the request. Callers should fail the operation rather than
// substitute a made-up result.
var ErrUnavailable = errors.New("ai backend unavailable")

// Config holds connection settings for the model backend. BaseURL may
// point at any OpenAI-compatible endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	Timeout        time.Duration
}

// Provider wraps an OpenAI-compatible client for embeddings and chat
// completions.
type Provider struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
	timeout        time.Duration
}

func NewProvider(cfg Config) *Provider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Provider{
		client:         openai.NewClientWithConfig(clientCfg),
		embeddingModel: cfg.EmbeddingModel,
		chatModel:      cfg.ChatModel,
		timeout:        timeout,
	}
}

// Embeddings returns one embedding vector per input text, in input order.
func (p *Provider) Embeddings(ctx context.Context, texts []string) ([][]float32, error) {
	log := logger.FromContext(ctx).WithPrefix("ai")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.embeddingModel),
		Input: texts,
	})
	if err != nil {
		log.Error("embedding request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		log.Error("embedding response size mismatch: want %d, got %d", len(texts), len(resp.Data))
		return nil, fmt.Errorf("%w: unexpected embedding count", ErrUnavailable)
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Chat sends a single-turn chat completion with a system prompt.
func (p *Provider) Chat(ctx context.Context, system, user string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("ai")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		log.Error("chat request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
