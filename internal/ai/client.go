package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/storage"
)

// DefaultTimeout bounds every provider call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Config tunes the client. Every field is optional.
type Config struct {
	// Provider selects the backend: mock, test, openai, or anthropic
	// (unimplemented, falls back to mock). Unknown values fall back to
	// mock. openai without an APIKey also falls back to mock.
	Provider string
	APIKey   string
	Model    string

	Timeout time.Duration

	// MaxRetries is carried for configuration compatibility; the
	// orchestrator itself never retries. Transport-level retries happen
	// inside the OpenAI provider.
	MaxRetries int

	CacheSize            int
	DisableCache         bool
	DisableUsageTracking bool

	// Observer, when set, receives per-call outcomes. The server passes
	// its metrics collector here.
	Observer Observer
}

// Observer receives operation outcomes for metrics collection. A nil
// observer disables reporting. Implementations must be safe for concurrent
// use.
type Observer interface {
	RecordAIOperation(operation, provider, status string, duration time.Duration)
	RecordAIFallback(operation, reason string)
	RecordAICacheLookup(hit bool)
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// Client is the uniform operation surface over a swappable provider, adding
// caching, timeouts, cancellation, usage tracking, and guaranteed
// non-failing fallback behavior.
//
// Cancellation is the caller's context: cancelling it makes the in-flight
// call return ErrCancelled. That is the only error a Client operation ever
// returns; timeouts and provider failures degrade to operation-specific
// fallback values instead.
type Client struct {
	cfg      Config
	provider Provider
	cache    *ResponseCache
	usage    *UsageTracker
	obs      Observer
	logger   *zap.Logger
}

// NewClient selects and wraps the provider per cfg. The store backs usage
// stats; pass a MemStore for ephemeral tracking.
func NewClient(cfg Config, store storage.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		cfg:      cfg,
		provider: selectProvider(cfg, logger),
		obs:      cfg.Observer,
		logger:   logger,
	}
	if !cfg.DisableCache {
		c.cache = NewResponseCache(cfg.CacheSize)
	}
	if !cfg.DisableUsageTracking {
		c.usage = NewUsageTracker(store, logger)
	}

	logger.Info("ai client ready",
		zap.String("provider", c.provider.Name()),
		zap.Duration("timeout", cfg.timeout()),
		zap.Bool("cache", c.cache != nil),
	)
	return c
}

func selectProvider(cfg Config, logger *zap.Logger) Provider {
	switch cfg.Provider {
	case ProviderTest:
		return NewTestProvider()
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			logger.Warn("openai selected without api key, using mock provider")
			return NewMockProvider()
		}
		return withBreaker(NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.timeout(),
		}), logger)
	case ProviderAnthropic:
		logger.Warn("anthropic provider not implemented, using mock provider")
		return NewMockProvider()
	case ProviderMock, "":
		return NewMockProvider()
	default:
		logger.Warn("unknown ai provider, using mock provider", zap.String("provider", cfg.Provider))
		return NewMockProvider()
	}
}

// ProviderName reports which backend ended up selected.
func (c *Client) ProviderName() string { return c.provider.Name() }

// Usage returns a copy of the usage counters, or zero stats when tracking is
// disabled.
func (c *Client) Usage() UsageStats {
	if c.usage == nil {
		return UsageStats{OperationsByType: map[string]int64{}}
	}
	return c.usage.Stats()
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// CacheStats reports cache hit/miss counts since startup.
func (c *Client) CacheStats() (hits, misses uint64, size int) {
	if c.cache == nil {
		return 0, 0, 0
	}
	h, m := c.cache.HitRate()
	return h, m, c.cache.Len()
}

// Summarize condenses text. On any failure other than cancellation it
// returns a user-facing apology sentence instead of an error.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return invoke(c, ctx, OpSummarize, text,
		func(ctx context.Context) (string, error) { return c.provider.Summarize(ctx, text) },
		func() string { return "Sorry, I couldn't summarize this text right now. Please try again." },
		func(out string) int { return estimateTokens(text, out) },
	)
}

// Rewrite restyles text; same fallback contract as Summarize.
func (c *Client) Rewrite(ctx context.Context, text, style string) (string, error) {
	return invoke(c, ctx, OpRewrite, map[string]string{"text": text, "style": style},
		func(ctx context.Context) (string, error) { return c.provider.Rewrite(ctx, text, style) },
		func() string { return "Sorry, I couldn't rewrite this text right now. Please try again." },
		func(out string) int { return estimateTokens(text, style, out) },
	)
}

// Interpret maps a query onto a desktop intent; failures degrade to an
// unknown intent with zero confidence.
func (c *Client) Interpret(ctx context.Context, query string) (Intent, error) {
	return invoke(c, ctx, OpInterpret, query,
		func(ctx context.Context) (Intent, error) { return c.provider.Interpret(ctx, query) },
		func() Intent { return Intent{Intent: IntentUnknown, Confidence: 0} },
		func(out Intent) int { return estimateTokens(query, out.Intent) },
	)
}

// ExplainFolder describes a folder; failures degrade to an explanatory
// placeholder that keeps the original path.
func (c *Client) ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error) {
	return invoke(c, ctx, OpExplainFolder, data,
		func(ctx context.Context) (FolderExplanation, error) { return c.provider.ExplainFolder(ctx, data) },
		func() FolderExplanation {
			return FolderExplanation{
				Description:     "This folder could not be analyzed right now.",
				Recommendations: []string{"Try again in a few moments."},
				Path:            data.Path,
			}
		},
		func(out FolderExplanation) int { return estimateTokens(data.Path, out.Description) },
	)
}

// invoke runs the shared per-call pipeline: cache lookup, timeout-bounded
// provider call, cache fill and usage tracking on success, cancellation
// propagation, and fallback conversion for every other failure.
func invoke[T any](
	c *Client,
	ctx context.Context,
	op string,
	input any,
	call func(context.Context) (T, error),
	fallback func() T,
	tokens func(T) int,
) (T, error) {
	var cacheKey string
	if c.cache != nil {
		key, err := c.cache.Key(op, input)
		if err == nil {
			cacheKey = key
			if raw, ok := c.cache.Get(key); ok {
				var cached T
				if uerr := sonic.Unmarshal([]byte(raw), &cached); uerr == nil {
					c.observeCache(true)
					return cached, nil
				}
				// Unreadable entry; treat as a miss and overwrite below.
			}
			c.observeCache(false)
		} else {
			c.logger.Warn("ai cache key", zap.String("op", op), zap.Error(err))
		}
	}

	opCtx, cancel := context.WithTimeoutCause(ctx, c.cfg.timeout(), ErrTimeout)
	defer cancel()

	start := time.Now()
	out, err := call(opCtx)
	elapsed := time.Since(start)
	if err == nil {
		if c.cache != nil && cacheKey != "" {
			if raw, merr := sonic.Marshal(out); merr == nil {
				c.cache.Set(cacheKey, string(raw))
			}
		}
		if c.usage != nil {
			c.usage.Track(op, tokens(out))
		}
		c.observeOp(op, "ok", elapsed)
		return out, nil
	}

	if isCancellation(opCtx, err) {
		c.observeOp(op, "cancelled", elapsed)
		var zero T
		return zero, fmt.Errorf("%s: %w", op, ErrCancelled)
	}

	c.logger.Warn("ai operation degraded to fallback",
		zap.String("op", op),
		zap.String("provider", c.provider.Name()),
		zap.Error(err),
	)
	c.observeOp(op, "fallback", elapsed)
	if c.obs != nil {
		c.obs.RecordAIFallback(op, fallbackReason(opCtx, err))
	}
	return fallback(), nil
}

func (c *Client) observeOp(op, status string, d time.Duration) {
	if c.obs != nil {
		c.obs.RecordAIOperation(op, c.provider.Name(), status, d)
	}
}

func (c *Client) observeCache(hit bool) {
	if c.obs != nil {
		c.obs.RecordAICacheLookup(hit)
	}
}

func fallbackReason(ctx context.Context, err error) string {
	if errors.Is(context.Cause(ctx), ErrTimeout) || errors.Is(err, ErrTimeout) {
		return "timeout"
	}
	return "error"
}
