package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockProvider produces plausible answers from cheap heuristics, with a short
// simulated latency so the UI's busy states stay exercised. It makes no
// external calls and is the fallback for every unconfigured provider.
type MockProvider struct {
	// Latency per call; the sleep is context-aware so cancellation and
	// timeouts behave exactly as they would against a real backend.
	Latency time.Duration
}

// NewMockProvider returns a mock with its default latency.
func NewMockProvider() *MockProvider {
	return &MockProvider{Latency: 300 * time.Millisecond}
}

func (m *MockProvider) Name() string { return ProviderMock }

func (m *MockProvider) sleep(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Summarize keeps the first couple of sentences and reports the rest as
// trimmed.
func (m *MockProvider) Summarize(ctx context.Context, text string) (string, error) {
	if err := m.sleep(ctx); err != nil {
		return "", err
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "The document is empty.", nil
	}
	if len(sentences) <= 2 {
		return strings.Join(sentences, " "), nil
	}
	return fmt.Sprintf("%s (...and %d more sentences.)",
		strings.Join(sentences[:2], " "), len(sentences)-2), nil
}

// Rewrite applies crude style transforms.
func (m *MockProvider) Rewrite(ctx context.Context, text, style string) (string, error) {
	if err := m.sleep(ctx); err != nil {
		return "", err
	}

	switch strings.ToLower(style) {
	case "formal":
		r := strings.NewReplacer("can't", "cannot", "won't", "will not", "don't", "do not", "it's", "it is")
		return r.Replace(text), nil
	case "casual":
		return text + " :)", nil
	case "concise":
		sentences := splitSentences(text)
		if len(sentences) > 1 {
			return sentences[0], nil
		}
		return text, nil
	default:
		return text, nil
	}
}

// Interpret pattern-matches the query against the desktop's verbs.
func (m *MockProvider) Interpret(ctx context.Context, query string) (Intent, error) {
	if err := m.sleep(ctx); err != nil {
		return Intent{}, err
	}

	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "open"):
		return Intent{Intent: "openItem", Confidence: 0.8, Entities: map[string]string{"target": lastWord(q)}}, nil
	case strings.Contains(q, "create") || strings.Contains(q, "new"):
		return Intent{Intent: "createItem", Confidence: 0.75, Entities: map[string]string{"target": lastWord(q)}}, nil
	case strings.Contains(q, "delete") || strings.Contains(q, "remove"):
		return Intent{Intent: "deleteItem", Confidence: 0.75, Entities: map[string]string{"target": lastWord(q)}}, nil
	case strings.Contains(q, "find") || strings.Contains(q, "search"):
		return Intent{Intent: "search", Confidence: 0.7, Entities: map[string]string{"query": lastWord(q)}}, nil
	case strings.Contains(q, "summarize") || strings.Contains(q, "summary"):
		return Intent{Intent: "summarize", Confidence: 0.7}, nil
	default:
		return Intent{Intent: IntentUnknown, Confidence: 0.2}, nil
	}
}

// ExplainFolder describes the folder from its listing alone.
func (m *MockProvider) ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error) {
	if err := m.sleep(ctx); err != nil {
		return FolderExplanation{}, err
	}

	desc := fmt.Sprintf("%s contains %d folder(s) and %d file(s).",
		data.Path, len(data.Folders), len(data.Files))

	var recs []string
	if len(data.Files) > 12 {
		recs = append(recs, "Consider grouping these files into subfolders.")
	}
	if len(data.Folders) == 0 && len(data.Files) == 0 {
		recs = append(recs, "This folder is empty; you could delete it.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Everything looks tidy here.")
	}

	return FolderExplanation{Description: desc, Recommendations: recs, Path: data.Path}, nil
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s+".")
		}
	}
	return out
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], `"'.,!?`)
}
