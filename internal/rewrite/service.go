package rewrite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pthm/promptly/internal/diff"
)

var (
	// ErrInvalidResponse is returned when a model reply cannot be normalized
	ErrInvalidResponse = errors.New("model response was not valid rewrite JSON")
	// ErrRewriteDisabled is returned when no provider is configured or rules-only mode is on
	ErrRewriteDisabled = errors.New("LLM rewrite is disabled")
)

// Completer sends one system and user message pair to a model and returns the
// text of its reply
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service runs rewrites against a Completer
type Service struct {
	completer Completer
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithTimeout bounds each provider call
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. A nil completer yields a service whose
// Rewrite always fails with ErrRewriteDisabled.
func NewService(c Completer, opts ...Option) *Service {
	s := &Service{completer: c, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a completed rewrite
type Result struct {
	Original string             `json:"original" yaml:"original"`
	Rewrite  *NormalizedRewrite `json:"rewrite" yaml:"rewrite"`
	Diff     []diff.Segment     `json:"diff" yaml:"diff"`
	Raw      string             `json:"-" yaml:"-"`
}

// Rewrite asks the model to critique and rewrite req.Prompt with the combined
// system prompt, then normalizes the reply. Diff compares the prompt with the
// improved prompt.
func (s *Service) Rewrite(ctx context.Context, req Request) (*Result, error) {
	if s.completer == nil {
		return nil, ErrRewriteDisabled
	}

	user, err := BuildUserMessage(req)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.completer.Complete(ctx, CombinedSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("rewrite request failed: %w", err)
	}
	s.logger.Debug("rewrite response received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(raw)),
	)

	parsed, ok := ParseModelJSON(raw)
	if !ok {
		s.logger.Debug("no JSON in rewrite response", zap.String("raw", truncate(raw, 200)))
		return nil, ErrInvalidResponse
	}
	normalized := Normalize(parsed)
	if normalized == nil {
		return nil, ErrInvalidResponse
	}

	return &Result{
		Original: req.Prompt,
		Rewrite:  normalized,
		Diff:     diff.Words(req.Prompt, normalized.Rewriter.ImprovedPrompt),
		Raw:      raw,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
