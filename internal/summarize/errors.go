package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// Kind classifies a summarization failure. Every kind is recoverable for the
// pipeline: the changelog entry is written without a summary.
type Kind int

const (
	KindUnknown Kind = iota
	KindQuotaExceeded
	KindAuthenticationFailed
	KindRateLimited
	KindModelAccessDenied
	KindPromptTooLarge
	KindTimeout
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "QuotaExceeded"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	case KindRateLimited:
		return "RateLimited"
	case KindModelAccessDenied:
		return "ModelAccessDenied"
	case KindPromptTooLarge:
		return "PromptTooLarge"
	case KindTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Advice returns the suggested recovery action shown to the user.
func (k Kind) Advice() string {
	switch k {
	case KindQuotaExceeded:
		return "switch to local-only mode and check your provider billing"
	case KindAuthenticationFailed:
		return "update your API credential"
	case KindRateLimited:
		return "wait before retrying, or switch to local-only mode"
	case KindModelAccessDenied:
		return "check your account's access to the configured model"
	case KindPromptTooLarge:
		return "commit smaller change sets or raise the prompt budget"
	case KindTimeout:
		return "retry later; the changelog entry was written without a summary"
	default:
		return "see the raw provider message"
	}
}

// Error is a classified summarization failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("summarization failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err under the given kind.
func newError(kind Kind, err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// quota/billing keywords are checked before rate-limit keywords: billing
// failures also carry "429", and must not be misread as generic rate limits.
var substringKinds = []struct {
	kind     Kind
	keywords []string
}{
	{KindQuotaExceeded, []string{"insufficient_quota", "quota", "billing", "exceeded your current"}},
	{KindAuthenticationFailed, []string{"invalid api key", "incorrect api key", "invalid_api_key", "unauthorized", "expired", "401"}},
	{KindRateLimited, []string{"rate_limit", "rate limit", "too many requests", "429"}},
	{KindModelAccessDenied, []string{"forbidden", "model_not_found", "does not have access", "403"}},
}

// ClassifyFailure maps a provider failure to a typed summarization error.
// Structured signals are checked first: context deadline means Timeout, and an
// API error's HTTP status decides authentication (401) and model access (403)
// without message sniffing. Everything else falls back to substring checks in
// a fixed order, first match wins.
func ClassifyFailure(err error) *Error {
	if err == nil {
		return nil
	}

	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401:
			return newError(KindAuthenticationFailed, err)
		case 403:
			return newError(KindModelAccessDenied, err)
		}
	}

	msg := strings.ToLower(err.Error())
	for _, entry := range substringKinds {
		for _, kw := range entry.keywords {
			if strings.Contains(msg, kw) {
				return newError(entry.kind, err)
			}
		}
	}

	return newError(KindUnknown, err)
}
