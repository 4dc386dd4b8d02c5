package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yates-Labs/clog/internal/commit"
)

// Summary is the result of a successful summarization call.
type Summary struct {
	Text  string     `json:"text"`
	Usage TokenUsage `json:"usage"`
}

// Client turns commit records into bounded summarization requests. It never
// retries within a single call; callers decide how to react to each failure
// kind.
type Client struct {
	llm    LLM
	config Config
}

// NewClient creates a summarization client over an LLM implementation.
func NewClient(llm LLM, config Config) *Client {
	if config.MaxSentences <= 0 {
		config.MaxSentences = DefaultConfig().MaxSentences
	}
	if config.MaxPromptTokens <= 0 {
		config.MaxPromptTokens = DefaultConfig().MaxPromptTokens
	}
	return &Client{llm: llm, config: config}
}

// Summarize requests a natural-language summary for a commit record. It
// validates the record before any network call: the client must be
// initialized and the record must carry at least one eligible non-empty diff.
// A prompt whose estimated token cost exceeds the configured budget fails
// fast with KindPromptTooLarge without a request.
func (c *Client) Summarize(ctx context.Context, rec *commit.Record, extraContext string) (*Summary, error) {
	if c == nil || c.llm == nil {
		return nil, ErrNotInitialized
	}
	if rec == nil || !rec.HasEligibleDiff() {
		return nil, ErrNothingToSummarize
	}

	prompt := BuildPrompt(rec, extraContext, c.config.MaxSentences)
	if estimate := EstimateTokens(prompt); estimate > c.config.MaxPromptTokens {
		return nil, &Error{
			Kind:    KindPromptTooLarge,
			Message: fmt.Sprintf("estimated %d tokens exceeds budget of %d", estimate, c.config.MaxPromptTokens),
		}
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	completion, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, ClassifyFailure(err)
	}

	text := strings.TrimSpace(completion.Text)
	if text == "" {
		return nil, &Error{Kind: KindUnknown, Message: "model returned an empty response"}
	}

	return &Summary{Text: text, Usage: completion.Usage}, nil
}

// VerifyConnection sends a minimal request and checks for any non-empty
// response. Used at initialization time to fail fast instead of during the
// first real commit.
func (c *Client) VerifyConnection(ctx context.Context) error {
	if c == nil || c.llm == nil {
		return ErrNotInitialized
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	completion, err := c.llm.Complete(ctx, "Reply with the single word OK.")
	if err != nil {
		return ClassifyFailure(err)
	}
	if strings.TrimSpace(completion.Text) == "" {
		return &Error{Kind: KindUnknown, Message: "connectivity check returned an empty response"}
	}
	return nil
}
