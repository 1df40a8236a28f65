// ABOUTME: Service ties chunking, the summarization model and action items together
// ABOUTME: Built once at startup and shared read-only by every request
package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/models"
)

// Default summary length bounds
const (
	DefaultMinLength = 30
	DefaultMaxLength = 150
)

var (
	// ErrEmptySummary means the model returned nothing usable
	ErrEmptySummary = errors.New("summarization returned an empty result")
	// ErrSummarizerUnavailable means no model was configured at startup
	ErrSummarizerUnavailable = errors.New("summarization service is unavailable")
	// ErrInvalidLengths means the requested bounds cannot be satisfied
	ErrInvalidLengths = errors.New("invalid summary length bounds")
)

// Model produces one abstractive summary for one chunk of text.
// Implementations must not sample: equal input gives equal output.
type Model interface {
	Summarize(ctx context.Context, text string, minLength, maxLength int) (string, error)
}

// Lengths bounds the size of each chunk summary
type Lengths struct {
	Min int
	Max int
}

// DefaultLengths returns the 30/150 defaults
func DefaultLengths() Lengths {
	return Lengths{Min: DefaultMinLength, Max: DefaultMaxLength}
}

// ParseLengths reads form values; blank or non-numeric values use defaults
func ParseLengths(minStr, maxStr string) (Lengths, error) {
	l := DefaultLengths()
	if v, err := strconv.Atoi(strings.TrimSpace(minStr)); err == nil {
		l.Min = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(maxStr)); err == nil {
		l.Max = v
	}
	return l, l.Validate()
}

// Validate checks 0 <= Min <= Max and Max > 0
func (l Lengths) Validate() error {
	if l.Min < 0 || l.Max <= 0 || l.Min > l.Max {
		return fmt.Errorf("%w: min %d, max %d", ErrInvalidLengths, l.Min, l.Max)
	}
	return nil
}

// Service is the immutable summarization pipeline
type Service struct {
	chunker *Chunker
	model   Model
	actions *ActionItemExtractor
	logger  logging.Logger
}

// NewService wires the pipeline. model may be nil, in which case every
// summarize call fails with ErrSummarizerUnavailable.
func NewService(chunker *Chunker, model Model, actions *ActionItemExtractor, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		chunker: chunker,
		model:   model,
		actions: actions,
		logger:  logger,
	}
}

// Available reports whether a model is configured
func (s *Service) Available() bool {
	return s.model != nil && s.chunker != nil
}

// Summarize chunks text, summarizes every chunk and joins the results with
// blank lines. It returns the summary and the number of chunks used.
func (s *Service) Summarize(ctx context.Context, text string, lengths Lengths) (string, int, error) {
	if strings.TrimSpace(text) == "" {
		return "", 0, ErrEmptyText
	}
	if !s.Available() {
		return "", 0, ErrSummarizerUnavailable
	}
	if err := lengths.Validate(); err != nil {
		return "", 0, err
	}

	chunks, err := s.chunker.Chunk(text)
	if err != nil {
		return "", 0, err
	}
	if len(chunks) > 1 {
		s.logger.Debugf("Text split into %d chunks of up to %d tokens", len(chunks), s.chunker.MaxTokens())
	}

	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.model.Summarize(ctx, chunk.Text, lengths.Min, lengths.Max)
		if err != nil {
			return "", len(chunks), fmt.Errorf("summarize chunk %d: %w", chunk.Index, err)
		}
		if summary = strings.TrimSpace(summary); summary != "" {
			summaries = append(summaries, summary)
		}
	}

	if len(summaries) == 0 {
		return "", len(chunks), ErrEmptySummary
	}
	return strings.Join(summaries, "\n\n"), len(chunks), nil
}

// ActionItems returns the date-bearing sentences of text. A date search
// failure is logged and treated as finding nothing.
func (s *Service) ActionItems(text string) []string {
	if s.actions == nil {
		return nil
	}
	items, err := s.actions.Extract(text)
	if err != nil {
		s.logger.Warnf("Action item extraction failed: %v", err)
		return nil
	}
	return items
}

// Brief runs the full summarize step for one submission
func (s *Service) Brief(ctx context.Context, text string, lengths Lengths) (*models.Brief, error) {
	summary, chunks, err := s.Summarize(ctx, text, lengths)
	if err != nil {
		return nil, err
	}
	return &models.Brief{
		Summary:      summary,
		ActionItems:  s.ActionItems(text),
		OriginalText: text,
		ChunkCount:   chunks,
	}, nil
}
