package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastMock() *MockProvider {
	return &MockProvider{Latency: 0}
}

func TestMockSummarize(t *testing.T) {
	m := fastMock()

	out, err := m.Summarize(context.Background(), "First point. Second point. Third. Fourth. Fifth.")
	require.NoError(t, err)
	assert.Contains(t, out, "First point.")
	assert.Contains(t, out, "more sentences")

	short, err := m.Summarize(context.Background(), "Only one thing.")
	require.NoError(t, err)
	assert.Equal(t, "Only one thing.", short)

	empty, err := m.Summarize(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "The document is empty.", empty)
}

func TestMockRewriteStyles(t *testing.T) {
	m := fastMock()

	formal, err := m.Rewrite(context.Background(), "I can't do this, it's hard", "formal")
	require.NoError(t, err)
	assert.NotContains(t, formal, "can't")
	assert.Contains(t, formal, "cannot")

	casual, err := m.Rewrite(context.Background(), "Hello", "casual")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(casual, ":)"))

	concise, err := m.Rewrite(context.Background(), "Keep this. Drop that. And this.", "concise")
	require.NoError(t, err)
	assert.Equal(t, "Keep this.", concise)
}

func TestMockInterpret(t *testing.T) {
	m := fastMock()

	cases := map[string]string{
		"open the readme":       "openItem",
		"create a new folder":   "createItem",
		"delete old files":      "deleteItem",
		"find my tax documents": "search",
		"summarize this":        "summarize",
		"what is the weather":   IntentUnknown,
	}
	for query, want := range cases {
		intent, err := m.Interpret(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, want, intent.Intent, "query %q", query)
		assert.GreaterOrEqual(t, intent.Confidence, 0.0)
	}
}

func TestMockExplainFolder(t *testing.T) {
	m := fastMock()

	expl, err := m.ExplainFolder(context.Background(), FolderData{
		Path:    "/documents",
		Folders: []string{"work"},
		Files:   []string{"readme.txt", "notes.txt"},
	})
	require.NoError(t, err)
	assert.Contains(t, expl.Description, "/documents")
	assert.Contains(t, expl.Description, "1 folder")
	assert.Contains(t, expl.Description, "2 file")
	assert.NotEmpty(t, expl.Recommendations)
	assert.Equal(t, "/documents", expl.Path)

	empty, err := m.ExplainFolder(context.Background(), FolderData{Path: "/empty"})
	require.NoError(t, err)
	assert.Contains(t, empty.Recommendations[0], "empty")
}

func TestMockHonorsCancellation(t *testing.T) {
	m := &MockProvider{Latency: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Summarize(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockDeterministicForTestProviderContrast(t *testing.T) {
	p := NewTestProvider()

	a, _ := p.Summarize(context.Background(), "x")
	b, _ := p.Summarize(context.Background(), "x")
	assert.Equal(t, a, b)

	p.Summaries["x"] = "mapped"
	c, _ := p.Summarize(context.Background(), "x")
	assert.Equal(t, "mapped", c)
}
