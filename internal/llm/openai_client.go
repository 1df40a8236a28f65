// ABOUTME: OpenAI-compatible chat client used as the summarization model
// ABOUTME: Greedy decoding with a fixed seed so equal input gives equal summaries
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for summaries
	DefaultChatModel = "gpt-4o-mini"
	// DefaultTimeout bounds one summarization call
	DefaultTimeout = 120 * time.Second
	// DefaultSeed pins sampling on servers that honour it
	DefaultSeed = 42
)

// ErrEmptyResponse is returned when the API answers without any choices
var ErrEmptyResponse = errors.New("no response from model")

const summarizePrompt = `You are a summarization model. Write an abstractive summary of the text the user sends.
The summary must be between %d and %d tokens long.
Reply with the summary only. Do not add a title, a preamble, or bullet points.`

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey    string
	BaseURL   string
	ChatModel string
	Timeout   time.Duration
	Seed      int
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:    apiKey,
		ChatModel: DefaultChatModel,
		Timeout:   DefaultTimeout,
		Seed:      DefaultSeed,
	}
}

// OpenAIClient wraps the OpenAI API client
type OpenAIClient struct {
	client    *openai.Client
	chatModel string
	timeout   time.Duration
	seed      int
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	model := config.ChatModel
	if model == "" {
		model = DefaultChatModel
	}

	oc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(oc),
		chatModel: model,
		timeout:   timeout,
		seed:      config.Seed,
	}, nil
}

// Model returns the configured chat model name
func (c *OpenAIClient) Model() string {
	return c.chatModel
}

// Summarize returns one summary for text, bounded by minLength and maxLength
// tokens. It makes exactly one API call.
func (c *OpenAIClient) Summarize(ctx context.Context, text string, minLength, maxLength int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	seed := c.seed
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(summarizePrompt, minLength, maxLength),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		// A literal 0 is dropped by omitempty and the server default applies
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   maxLength,
		Seed:        &seed,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
