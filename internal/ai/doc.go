// Package ai implements the desktop's assistance layer: four operations
// (summarize, rewrite, interpret, explainFolder) over a swappable provider.
//
// The Client wraps whichever provider is configured with an LRU response
// cache, a per-call timeout, cancellation propagation, and usage tracking.
// Its failure contract is deliberately one-sided: cancellation by the caller
// is the only error an operation ever returns. Timeouts, network trouble,
// and provider errors all degrade to typed, operation-specific fallback
// values so the desktop UI never has to render a raw error.
//
// Providers: MockProvider answers from heuristics with simulated latency,
// TestProvider is a deterministic lookup table for automated tests, and
// OpenAIProvider speaks the chat-completions HTTP protocol behind a circuit
// breaker.
package ai
