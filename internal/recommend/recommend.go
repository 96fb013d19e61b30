package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"respira/internal/core/model"
)

// ErrMalformed indicates a provider answer that cannot be used.
var ErrMalformed = errors.New("malformed recommendation")

// FallbackReasoning is shown with the default BOX_BREATHING fallback.
const FallbackReasoning = "Parece que hubo un problema de conexión, pero la respiración cuadrada es excelente para centrarte y calmarte en cualquier situación."

var fallbackReasons = map[model.TechniqueID]string{
	model.BoxBreathing:  FallbackReasoning,
	model.Relax478:      "Parece que hubo un problema de conexión, pero la técnica 4-7-8 alarga la exhalación y te ayudará a calmarte en cualquier situación.",
	model.Diaphragmatic: "Parece que hubo un problema de conexión, pero la respiración diafragmática relaja el cuerpo y baja el ritmo cardíaco en cualquier situación.",
	model.SlowPaced:     "Parece que hubo un problema de conexión, pero la respiración lenta y constante equilibra tu sistema nervioso en cualquier situación.",
}

// FallbackReasoningFor returns the text shown when id is used as the fallback.
func FallbackReasoningFor(id model.TechniqueID) string {
	if reason, ok := fallbackReasons[id]; ok {
		return reason
	}
	return FallbackReasoning
}

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 10 * time.Second

// Request carries what the user told us about how they feel.
type Request struct {
	Emotion     string
	Description string
}

// Empty reports whether the request has nothing to analyze.
func (req Request) Empty() bool {
	return strings.TrimSpace(req.Emotion) == "" && strings.TrimSpace(req.Description) == ""
}

// Recommendation is a technique choice with a short justification.
type Recommendation struct {
	TechniqueID model.TechniqueID `json:"techniqueId"`
	Reasoning   string            `json:"reasoning"`
	Fallback    bool              `json:"-"`
}

// Validate checks the answer against the catalog.
func (rec Recommendation) Validate() error {
	if _, err := model.Lookup(rec.TechniqueID); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(rec.Reasoning) == "" {
		return fmt.Errorf("%w: empty reasoning", ErrMalformed)
	}
	return nil
}

// Provider picks a technique for a request.
type Provider interface {
	Recommend(ctx context.Context, req Request) (Recommendation, error)
}

// Options configures a Service.
type Options struct {
	Timeout  time.Duration
	Fallback model.TechniqueID
	Logger   *slog.Logger
}

// Service wraps a Provider and guarantees an answer.
type Service struct {
	provider Provider
	timeout  time.Duration
	fallback Recommendation
	logger   *slog.Logger
}

// NewService creates a Service around provider.
func NewService(provider Provider, options Options) *Service {
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if _, err := model.Lookup(options.Fallback); err != nil {
		options.Fallback = model.BoxBreathing
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Service{
		provider: provider,
		timeout:  options.Timeout,
		fallback: Recommendation{
			TechniqueID: options.Fallback,
			Reasoning:   FallbackReasoningFor(options.Fallback),
			Fallback:    true,
		},
		logger: options.Logger.With(slog.String("component", "recommend")),
	}
}

// Recommend asks the provider and substitutes the fallback on any failure.
func (service *Service) Recommend(ctx context.Context, req Request) Recommendation {
	if req.Empty() {
		service.logger.Warn("empty request, using fallback")
		return service.fallback
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	rec, err := service.provider.Recommend(ctx, req)
	if err == nil {
		err = rec.Validate()
	}
	if err != nil {
		service.logger.Warn("recommendation failed, using fallback",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)),
		)
		return service.fallback
	}

	rec.Fallback = false
	service.logger.Info("recommendation resolved",
		slog.String("technique", string(rec.TechniqueID)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return rec
}

// Resolve returns the recommended catalog technique together with the answer.
func (service *Service) Resolve(ctx context.Context, req Request) (model.Technique, Recommendation) {
	rec := service.Recommend(ctx, req)
	return model.MustLookup(rec.TechniqueID), rec
}
