package summarize

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyFailureSubstrings(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		// Quota keywords win even when the payload also mentions 429.
		{"quota beats rate limit", errors.New("insufficient_quota: request rejected (429)"), KindQuotaExceeded},
		{"billing", errors.New("billing hard limit reached"), KindQuotaExceeded},
		{"plain rate limit", errors.New("429: rate_limit exceeded, slow down"), KindRateLimited},
		{"too many requests", errors.New("Too Many Requests"), KindRateLimited},
		{"bad key", errors.New("Incorrect API key provided"), KindAuthenticationFailed},
		{"expired key", errors.New("token expired, please re-authenticate"), KindAuthenticationFailed},
		{"forbidden", errors.New("forbidden: project lacks permission"), KindModelAccessDenied},
		{"model missing", errors.New("model_not_found: gpt-42 does not exist"), KindModelAccessDenied},
		{"anything else", errors.New("connection reset by peer"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFailure(tt.err)
			if got.Kind != tt.want {
				t.Errorf("ClassifyFailure(%q) = %s, want %s", tt.err, got.Kind, tt.want)
			}
			if got.Message == "" {
				t.Error("classified error lost the raw message")
			}
		})
	}
}

func TestClassifyFailureTimeout(t *testing.T) {
	err := fmt.Errorf("request aborted: %w", context.DeadlineExceeded)
	got := ClassifyFailure(err)
	if got.Kind != KindTimeout {
		t.Errorf("expected Timeout, got %s", got.Kind)
	}
}

func TestClassifyFailurePassesThroughTypedErrors(t *testing.T) {
	orig := &Error{Kind: KindPromptTooLarge, Message: "too big"}
	got := ClassifyFailure(fmt.Errorf("wrapped: %w", orig))
	if got != orig {
		t.Errorf("expected typed error to pass through, got %+v", got)
	}
}

func TestKindAdvice(t *testing.T) {
	kinds := []Kind{
		KindQuotaExceeded, KindAuthenticationFailed, KindRateLimited,
		KindModelAccessDenied, KindPromptTooLarge, KindTimeout, KindUnknown,
	}
	for _, k := range kinds {
		if k.Advice() == "" {
			t.Errorf("kind %s has no advice", k)
		}
		if k.String() == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
