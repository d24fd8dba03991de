package ai

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrodesk/reanimated/internal/storage"
)

// countingProvider wraps TestProvider and counts real invocations so tests
// can prove cache hits never reach the provider.
type countingProvider struct {
	*TestProvider
	calls atomic.Int64
}

func (p *countingProvider) Summarize(ctx context.Context, text string) (string, error) {
	p.calls.Add(1)
	return p.TestProvider.Summarize(ctx, text)
}

func newTestClient(t *testing.T, cfg Config) (*Client, *countingProvider) {
	t.Helper()
	p := &countingProvider{TestProvider: NewTestProvider()}
	c := NewClient(cfg, storage.NewMemStore(), nil)
	c.provider = p
	return c, p
}

func TestProviderSelection(t *testing.T) {
	store := storage.NewMemStore()
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{}, ProviderMock},
		{Config{Provider: ProviderMock}, ProviderMock},
		{Config{Provider: ProviderTest}, ProviderTest},
		{Config{Provider: ProviderAnthropic}, ProviderMock},
		{Config{Provider: "frontier-9000"}, ProviderMock},
		{Config{Provider: ProviderOpenAI}, ProviderMock}, // no key
		{Config{Provider: ProviderOpenAI, APIKey: "sk-test"}, ProviderOpenAI},
	}
	for _, tc := range cases {
		c := NewClient(tc.cfg, store, nil)
		assert.Equal(t, tc.want, c.ProviderName(), "provider=%q", tc.cfg.Provider)
	}
}

func TestSummarizeHappyPath(t *testing.T) {
	c, _ := newTestClient(t, Config{Provider: ProviderTest})

	out, err := c.Summarize(context.Background(), "some long document")
	require.NoError(t, err)
	assert.Equal(t, "summary of: some long document", out)

	stats := c.Usage()
	assert.Equal(t, int64(1), stats.TotalOperations)
	assert.Equal(t, int64(1), stats.OperationsByType[OpSummarize])
}

func TestCacheHitSkipsProviderAndUsage(t *testing.T) {
	c, p := newTestClient(t, Config{Provider: ProviderTest})

	first, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)
	second, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), p.calls.Load(), "second call must come from cache")
	assert.Equal(t, int64(1), c.Usage().TotalOperations, "cache hits are not tracked")

	hits, _, _ := c.CacheStats()
	assert.Equal(t, uint64(1), hits)
}

func TestCacheDisabled(t *testing.T) {
	c, p := newTestClient(t, Config{Provider: ProviderTest, DisableCache: true})

	_, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)
	_, err = c.Summarize(context.Background(), "doc")
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.calls.Load())
}

func TestCancellationPropagates(t *testing.T) {
	c := NewClient(Config{Provider: ProviderMock}, storage.NewMemStore(), nil)
	c.provider = &MockProvider{Latency: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Summarize(ctx, "never finishes")
	assert.ErrorIs(t, err, ErrCancelled, "cancellation must surface as an error, never a fallback")
}

func TestCancelAfterSettlementIsNoop(t *testing.T) {
	c := NewClient(Config{Provider: ProviderTest}, storage.NewMemStore(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := c.Summarize(ctx, "quick")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	assert.NotPanics(t, func() { cancel() })
}

func TestTimeoutFallsBack(t *testing.T) {
	c := NewClient(Config{Provider: ProviderMock, Timeout: 20 * time.Millisecond}, storage.NewMemStore(), nil)
	c.provider = &MockProvider{Latency: 5 * time.Second}

	out, err := c.Summarize(context.Background(), "slow")
	require.NoError(t, err, "timeouts degrade to fallbacks, not errors")
	assert.Contains(t, out, "try again")

	intent, err := c.Interpret(context.Background(), "open notepad")
	require.NoError(t, err)
	assert.Equal(t, IntentUnknown, intent.Intent)
	assert.Zero(t, intent.Confidence)
}

func TestProviderErrorFallsBack(t *testing.T) {
	tp := NewTestProvider()
	tp.Err = assert.AnError
	c := NewClient(Config{Provider: ProviderTest}, storage.NewMemStore(), nil)
	c.provider = tp

	out, err := c.Rewrite(context.Background(), "text", "formal")
	require.NoError(t, err)
	assert.Contains(t, out, "couldn't rewrite")

	expl, err := c.ExplainFolder(context.Background(), FolderData{Path: "/documents"})
	require.NoError(t, err)
	assert.Equal(t, "/documents", expl.Path, "fallback keeps the original folder path")
	assert.NotEmpty(t, expl.Description)
	assert.Len(t, expl.Recommendations, 1)

	assert.Equal(t, int64(0), c.Usage().TotalOperations, "failed calls are not tracked")
}

func TestFallbackNotCached(t *testing.T) {
	tp := NewTestProvider()
	tp.Err = assert.AnError
	c := NewClient(Config{Provider: ProviderTest}, storage.NewMemStore(), nil)
	c.provider = tp

	_, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)

	tp.Err = nil
	out, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "summary of: doc", out, "a recovered provider must not be shadowed by a cached fallback")
}

func TestRewriteCacheKeyIncludesStyle(t *testing.T) {
	c := NewClient(Config{Provider: ProviderTest}, storage.NewMemStore(), nil)

	formal, err := c.Rewrite(context.Background(), "hi", "formal")
	require.NoError(t, err)
	casual, err := c.Rewrite(context.Background(), "hi", "casual")
	require.NoError(t, err)

	assert.NotEqual(t, formal, casual)
}

func TestInterpretStructuredRoundTrip(t *testing.T) {
	tp := NewTestProvider()
	tp.Intents["open readme"] = Intent{
		Intent:     "openItem",
		Confidence: 0.9,
		Entities:   map[string]string{"target": "readme"},
	}
	c := NewClient(Config{Provider: ProviderTest}, storage.NewMemStore(), nil)
	c.provider = tp

	// First call fills the cache; second must deserialize the same shape.
	for i := 0; i < 2; i++ {
		intent, err := c.Interpret(context.Background(), "open readme")
		require.NoError(t, err)
		assert.Equal(t, "openItem", intent.Intent)
		assert.Equal(t, 0.9, intent.Confidence)
		assert.Equal(t, "readme", intent.Entities["target"])
	}
}

func TestUsageTrackingDisabled(t *testing.T) {
	c := NewClient(Config{Provider: ProviderTest, DisableUsageTracking: true}, storage.NewMemStore(), nil)

	_, err := c.Summarize(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.Usage().TotalOperations)
}

func TestClearCache(t *testing.T) {
	c, p := newTestClient(t, Config{Provider: ProviderTest})

	_, _ = c.Summarize(context.Background(), "doc")
	c.ClearCache()
	_, _ = c.Summarize(context.Background(), "doc")

	assert.Equal(t, int64(2), p.calls.Load())
}

type recordingObserver struct {
	ops       []string
	fallbacks []string
	hits      int
	misses    int
}

func (o *recordingObserver) RecordAIOperation(op, provider, status string, d time.Duration) {
	o.ops = append(o.ops, op+"/"+provider+"/"+status)
}

func (o *recordingObserver) RecordAIFallback(op, reason string) {
	o.fallbacks = append(o.fallbacks, op+"/"+reason)
}

func (o *recordingObserver) RecordAICacheLookup(hit bool) {
	if hit {
		o.hits++
		return
	}
	o.misses++
}

func TestObserverSeesOutcomes(t *testing.T) {
	obs := &recordingObserver{}
	c := NewClient(Config{Provider: ProviderTest, Observer: obs}, storage.NewMemStore(), nil)

	_, err := c.Summarize(context.Background(), "hello")
	require.NoError(t, err)
	_, err = c.Summarize(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, []string{"summarize/test/ok"}, obs.ops, "cache hit must not count as an operation")
	assert.Equal(t, 1, obs.misses)
	assert.Equal(t, 1, obs.hits)
	assert.Empty(t, obs.fallbacks)
}

func TestObserverSeesTimeoutFallback(t *testing.T) {
	obs := &recordingObserver{}
	c := NewClient(Config{Provider: ProviderMock, Timeout: 20 * time.Millisecond, Observer: obs}, storage.NewMemStore(), nil)
	c.provider = &MockProvider{Latency: 5 * time.Second}

	_, err := c.Summarize(context.Background(), "slow")
	require.NoError(t, err)

	assert.Equal(t, []string{"summarize/mock/fallback"}, obs.ops)
	assert.Equal(t, []string{"summarize/timeout"}, obs.fallbacks)
}

func TestObserverSeesCancellation(t *testing.T) {
	obs := &recordingObserver{}
	c := NewClient(Config{Provider: ProviderMock, Observer: obs}, storage.NewMemStore(), nil)
	c.provider = &MockProvider{Latency: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Summarize(ctx, "never")
	require.ErrorIs(t, err, ErrCancelled)

	assert.Equal(t, []string{"summarize/mock/cancelled"}, obs.ops)
	assert.Empty(t, obs.fallbacks)
}
