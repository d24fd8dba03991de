package ai

import "context"

// Provider is the 4-operation capability interface every AI backend
// implements. Implementations must honor context cancellation and deadlines
// on every call.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
	Rewrite(ctx context.Context, text, style string) (string, error)
	Interpret(ctx context.Context, query string) (Intent, error)
	ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error)
}

// Provider selector values accepted in configuration.
const (
	ProviderMock   = "mock"
	ProviderTest   = "test"
	ProviderOpenAI = "openai"

	// ProviderAnthropic is accepted but not implemented; it falls back to
	// the mock provider at construction.
	ProviderAnthropic = "anthropic"
)
