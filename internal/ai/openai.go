package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider speaks the standard chat-completions protocol with bearer
// auth, over a resty client with retryablehttp's transport. Retries cover
// connection-level failures only; HTTP error statuses surface immediately so
// the orchestrator can translate them.
type OpenAIProvider struct {
	http  *resty.Client
	model string
}

// OpenAIConfig configures the provider. Zero values get sensible defaults.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIProvider builds the provider. The API key is required; selection
// logic upstream never constructs this without one.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retryClient.RetryMax).
		SetRetryWaitTime(retryClient.RetryWaitMin).
		SetRetryMaxWaitTime(retryClient.RetryWaitMax).
		SetTransport(retryClient.HTTPClient.Transport)

	return &OpenAIProvider{http: client, model: cfg.Model}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// chat runs one completion and translates transport and status failures into
// the package error taxonomy.
func (p *OpenAIProvider) chat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	var out chatResponse
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: p.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode())
	case resp.StatusCode() == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode())
	case resp.StatusCode() >= 500:
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode())
	case resp.IsError():
		msg := "unexpected response"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("%w: %s (status %d)", ErrProvider, msg, resp.StatusCode())
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrProvider)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (p *OpenAIProvider) Summarize(ctx context.Context, text string) (string, error) {
	return p.chat(ctx,
		"You summarize documents for a desktop assistant. Reply with the summary only, at most three sentences.",
		text, 256, 0.3)
}

func (p *OpenAIProvider) Rewrite(ctx context.Context, text, style string) (string, error) {
	if style == "" {
		style = "clearer"
	}
	return p.chat(ctx,
		fmt.Sprintf("You rewrite text in a %s style. Reply with the rewritten text only.", style),
		text, 512, 0.5)
}

func (p *OpenAIProvider) Interpret(ctx context.Context, query string) (Intent, error) {
	raw, err := p.chat(ctx,
		`You map a user's request onto a desktop action. Reply with JSON only: {"intent":"openItem|createItem|deleteItem|search|summarize|unknown","confidence":0.0,"entities":{}}`,
		query, 128, 0)
	if err != nil {
		return Intent{}, err
	}

	var intent Intent
	if perr := sonic.Unmarshal(extractJSON(raw), &intent); perr != nil || intent.Intent == "" {
		// Malformed model output degrades to an unknown intent rather
		// than failing the call.
		return Intent{Intent: IntentUnknown, Confidence: 0}, nil
	}
	return intent, nil
}

func (p *OpenAIProvider) ExplainFolder(ctx context.Context, data FolderData) (FolderExplanation, error) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return FolderExplanation{}, fmt.Errorf("%w: encode folder data: %v", ErrProvider, err)
	}

	raw, err := p.chat(ctx,
		`You explain what a folder is for, given its listing. Reply with JSON only: {"description":"...","recommendations":["..."]}`,
		string(payload), 512, 0.4)
	if err != nil {
		return FolderExplanation{}, err
	}

	var expl FolderExplanation
	if perr := sonic.Unmarshal(extractJSON(raw), &expl); perr != nil || expl.Description == "" {
		// Keep whatever prose the model produced as the description.
		expl = FolderExplanation{
			Description:     raw,
			Recommendations: nil,
		}
	}
	expl.Path = data.Path
	return expl, nil
}

// extractJSON pulls the first balanced JSON object out of model output that
// may be wrapped in prose or markdown fences.
func extractJSON(s string) []byte {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return []byte(s)
	}
	return []byte(s[start : end+1])
}
