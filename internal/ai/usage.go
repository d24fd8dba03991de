package ai

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/storage"
)

// UsageStats counts completed AI operations. Tokens are a rough estimate
// (four characters per token) since the mock and test providers never see a
// real tokenizer.
type UsageStats struct {
	TotalOperations  int64            `json:"totalOperations"`
	TotalTokens      int64            `json:"totalTokens"`
	OperationsByType map[string]int64 `json:"operationsByType"`
	LastUpdated      time.Time        `json:"lastUpdated"`
}

// UsageTracker accumulates stats and persists them after every mutation.
// Persistence failures are logged and swallowed.
type UsageTracker struct {
	mu     sync.Mutex
	stats  UsageStats
	store  storage.Store
	logger *zap.Logger
}

// NewUsageTracker rehydrates stats from the store, starting from zero state
// when nothing is stored or the payload is corrupt.
func NewUsageTracker(store storage.Store, logger *zap.Logger) *UsageTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &UsageTracker{
		stats:  UsageStats{OperationsByType: make(map[string]int64)},
		store:  store,
		logger: logger,
	}

	data, err := store.Load(storage.KeyAIUsage)
	if err != nil {
		return t
	}
	var loaded UsageStats
	if err := sonic.Unmarshal(data, &loaded); err != nil {
		logger.Warn("discarding corrupt usage stats", zap.Error(err))
		return t
	}
	if loaded.OperationsByType == nil {
		loaded.OperationsByType = make(map[string]int64)
	}
	t.stats = loaded
	return t
}

// Track records one completed operation.
func (t *UsageTracker) Track(operation string, tokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.TotalOperations++
	t.stats.TotalTokens += int64(tokens)
	t.stats.OperationsByType[operation]++
	t.stats.LastUpdated = time.Now()
	t.persistLocked()
}

// Stats returns a copy of the current counters.
func (t *UsageTracker) Stats() UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.stats
	out.OperationsByType = make(map[string]int64, len(t.stats.OperationsByType))
	for k, v := range t.stats.OperationsByType {
		out.OperationsByType[k] = v
	}
	return out
}

// Reset zeroes all counters and persists the empty state.
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats = UsageStats{OperationsByType: make(map[string]int64), LastUpdated: time.Now()}
	t.persistLocked()
}

func (t *UsageTracker) persistLocked() {
	data, err := sonic.Marshal(t.stats)
	if err != nil {
		t.logger.Error("serialize usage stats", zap.Error(err))
		return
	}
	if err := t.store.Save(storage.KeyAIUsage, data); err != nil {
		t.logger.Error("persist usage stats", zap.Error(err))
	}
}

// estimateTokens approximates token counts from character lengths.
func estimateTokens(texts ...string) int {
	var chars int
	for _, s := range texts {
		chars += len(s)
	}
	return chars / 4
}
