package services

import (
	"context"
	"errors"

	"fitshop/internal/infra/gemini"
	"fitshop/internal/logging"
	"fitshop/internal/metrics"
	"fitshop/internal/tips"
)

var (
	ErrTipsNotConfigured = errors.New("ai tips provider not configured")
	ErrTipsUnavailable   = errors.New("ai tips provider unavailable")
)

type TipsService struct {
	gen gemini.Generator
}

// NewTipsService accepts a nil generator; every request then gets the
// fallback advice with ErrTipsNotConfigured.
func NewTipsService(gen gemini.Generator) *TipsService {
	return &TipsService{gen: gen}
}

// Advise always returns usable advice. A non-nil error says the advice is
// the static fallback because the provider could not be used.
func (s *TipsService) Advise(ctx context.Context, p tips.Profile) (tips.Advice, tips.Source, error) {
	if s.gen == nil {
		return s.fallback(p), tips.SourceFallback, ErrTipsNotConfigured
	}

	text, err := s.gen.Generate(ctx, tips.BuildPrompt(p))
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return s.fallback(p), tips.SourceFallback, ErrTipsNotConfigured
		}
		logging.Ctx(ctx).Error().Err(err).Msg("ai tips generation failed")
		return s.fallback(p), tips.SourceFallback, errors.Join(ErrTipsUnavailable, err)
	}

	advice, err := tips.ParseStructured(text)
	if err == nil {
		metrics.TipsServed.WithLabelValues(string(tips.SourceProvider)).Inc()
		return advice, tips.SourceProvider, nil
	}

	logging.Ctx(ctx).Warn().Err(err).Msg("ai tips response not structured, extracting")
	advice, src := tips.FromUnstructured(text, p)
	metrics.TipsServed.WithLabelValues(string(src)).Inc()
	return advice, src, nil
}

func (s *TipsService) fallback(p tips.Profile) tips.Advice {
	metrics.TipsServed.WithLabelValues(string(tips.SourceFallback)).Inc()
	return tips.Fallback(p)
}
