// ABOUTME: Chunker splits long text into token-bounded windows for the model
// ABOUTME: Windows are contiguous and non-overlapping; boundaries ignore sentences
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/actionbrief/internal/models"
	"github.com/tiktoken-go/tokenizer"
)

// DefaultChunkTokens is the model input window used when none is configured
const DefaultChunkTokens = 1000

// ErrEmptyText is returned when there is nothing to chunk or summarize
var ErrEmptyText = errors.New("no text was provided")

// Tokenizer encodes text into model tokens and back
type Tokenizer interface {
	Encode(text string) ([]uint, error)
	Decode(tokens []uint) (string, error)
}

// TiktokenTokenizer adapts a tiktoken codec to Tokenizer
type TiktokenTokenizer struct {
	codec tokenizer.Codec
}

// NewTiktokenTokenizer picks the codec for modelName, falling back to
// cl100k_base for models tiktoken does not know.
func NewTiktokenTokenizer(modelName string) (*TiktokenTokenizer, error) {
	codec, err := tokenizer.ForModel(tokenizer.Model(modelName))
	if err != nil {
		codec, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			return nil, fmt.Errorf("failed to get fallback tokenizer: %w", err)
		}
	}
	return &TiktokenTokenizer{codec: codec}, nil
}

// Encode returns the token ids for text
func (t *TiktokenTokenizer) Encode(text string) ([]uint, error) {
	ids, _, err := t.codec.Encode(text)
	return ids, err
}

// Decode turns token ids back into text
func (t *TiktokenTokenizer) Decode(tokens []uint) (string, error) {
	return t.codec.Decode(tokens)
}

// Chunker handles token-window chunking
type Chunker struct {
	tokenizer Tokenizer
	maxTokens int
}

// NewChunker creates a Chunker; maxTokens <= 0 selects DefaultChunkTokens
func NewChunker(tok Tokenizer, maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultChunkTokens
	}
	return &Chunker{tokenizer: tok, maxTokens: maxTokens}
}

// MaxTokens returns the window size
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

// Count returns the number of tokens in text
func (c *Chunker) Count(text string) (int, error) {
	tokens, err := c.tokenizer.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return len(tokens), nil
}

// Chunk splits text into windows of at most MaxTokens tokens. Text that fits
// in one window comes back as a single chunk holding the input unchanged.
func (c *Chunker) Chunk(text string) ([]models.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	tokens, err := c.tokenizer.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}

	if len(tokens) <= c.maxTokens {
		return []models.Chunk{{Index: 0, Tokens: tokens, Text: text}}, nil
	}

	chunks := make([]models.Chunk, 0, (len(tokens)+c.maxTokens-1)/c.maxTokens)
	for start := 0; start < len(tokens); start += c.maxTokens {
		end := start + c.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		window := tokens[start:end]

		decoded, err := c.tokenizer.Decode(window)
		if err != nil {
			return nil, fmt.Errorf("decode chunk %d: %w", len(chunks), err)
		}

		chunks = append(chunks, models.Chunk{
			Index:  len(chunks),
			Tokens: window,
			Text:   decoded,
		})
	}

	return chunks, nil
}
