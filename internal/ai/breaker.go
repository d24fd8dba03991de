package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/infrastructure/resilience"
)

// breakerProvider routes every call through a circuit breaker so a failing
// upstream trips to instant rejections, which the client then converts to
// fallbacks.
type breakerProvider struct {
	inner   Provider
	breaker *resilience.Breaker
}

func withBreaker(inner Provider, logger *zap.Logger) Provider {
	b := resilience.New(inner.Name(), resilience.Settings{
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("ai provider circuit state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &breakerProvider{inner: inner, breaker: b}
}

func (p *breakerProvider) Name() string { return p.inner.Name() }

func execute[T any](p *breakerProvider, call func() (T, error)) (T, error) {
	out, err := p.breaker.Execute(func() (any, error) { return call() })
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

func (p *breakerProvider) Summarize(ctx context.Context, text string) (string, error) {
	return execute(p, func() (string, error) { return p.inner.Summarize(ctx, text) })
}

func (p *breakerProvider) Rewrite(ctx context.Context, text, style string) (string, error) {
	return execute(p, func() (string, error) { return p.inner.Rewrite(ctx, text, style) })
}

func (p *breakerProvider) Interpret(ctx context.Context, query string) (Intent, error) {
	return execute(p, func() (Intent, error) { return p.inner.Interpret(ctx, query) })
}

func (p *breakerProvider) ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error) {
	return execute(p, func() (FolderExplanation, error) { return p.inner.ExplainFolder(ctx, data) })
}
