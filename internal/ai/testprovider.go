package ai

import "context"

// TestProvider is a pure lookup-table provider with zero latency, for
// automated tests: identical inputs always produce identical outputs, and
// unmapped inputs get a deterministic echo.
type TestProvider struct {
	Summaries    map[string]string
	Rewrites     map[string]string
	Intents      map[string]Intent
	Explanations map[string]FolderExplanation

	// Err, when set, is returned by every call. Tests use it to drive the
	// client's fallback paths without a flaky provider.
	Err error
}

// NewTestProvider returns an empty lookup-table provider.
func NewTestProvider() *TestProvider {
	return &TestProvider{
		Summaries:    make(map[string]string),
		Rewrites:     make(map[string]string),
		Intents:      make(map[string]Intent),
		Explanations: make(map[string]FolderExplanation),
	}
}

func (p *TestProvider) Name() string { return ProviderTest }

func (p *TestProvider) Summarize(ctx context.Context, text string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if s, ok := p.Summaries[text]; ok {
		return s, nil
	}
	return "summary of: " + text, nil
}

func (p *TestProvider) Rewrite(ctx context.Context, text, style string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if s, ok := p.Rewrites[text]; ok {
		return s, nil
	}
	return style + " rewrite of: " + text, nil
}

func (p *TestProvider) Interpret(ctx context.Context, query string) (Intent, error) {
	if p.Err != nil {
		return Intent{}, p.Err
	}
	if in, ok := p.Intents[query]; ok {
		return in, nil
	}
	return Intent{Intent: IntentUnknown, Confidence: 0}, nil
}

func (p *TestProvider) ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error) {
	if p.Err != nil {
		return FolderExplanation{}, p.Err
	}
	if ex, ok := p.Explanations[data.Path]; ok {
		return ex, nil
	}
	return FolderExplanation{
		Description:     "test explanation of " + data.Path,
		Recommendations: []string{"none"},
		Path:            data.Path,
	}, nil
}
