package ai

import (
	"context"
	"errors"
	"strings"
)

// AI error taxonomy. Only ErrCancelled ever reaches a caller of Client; every
// other failure degrades to an operation-specific fallback value.
var (
	ErrTimeout            = errors.New("ai: operation timed out")
	ErrCancelled          = errors.New("ai: operation cancelled")
	ErrNetworkUnavailable = errors.New("ai: network unavailable")
	ErrProvider           = errors.New("ai: provider error")
	ErrRateLimited        = errors.New("ai: provider rate limited")
	ErrAuth               = errors.New("ai: provider authentication failed")
	ErrServiceUnavailable = errors.New("ai: provider service unavailable")
)

// isCancellation decides whether a failed call was cancelled by the caller,
// as opposed to timing out or failing inside the provider. The message match
// catches providers that flatten context errors into plain strings.
func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(context.Cause(ctx), context.Canceled) {
		return true
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "cancel")
}
