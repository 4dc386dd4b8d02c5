package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Yates-Labs/clog/internal/commit"
)

func eligibleRecord() *commit.Record {
	return &commit.Record{
		Hash:        "0123456789abcdef0123456789abcdef01234567",
		Message:     "Add login",
		AuthorName:  "Alice",
		AuthorEmail: "alice@example.com",
		Timestamp:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Changes: []commit.FileChange{
			{Path: "login.ts", Kind: commit.Added, Diff: "+login code\n", DiffSize: 12, EligibleForSummary: true},
			{Path: "app.ts", Kind: commit.Modified},
			{Path: "temp.js", Kind: commit.Deleted},
		},
	}
}

func TestSummarizeSuccess(t *testing.T) {
	mock := NewMockLLM("Adds the login flow.")
	mock.Usage = TokenUsage{Prompt: 120, Completion: 10, Total: 130}
	client := NewClient(mock, DefaultConfig())

	summary, err := client.Summarize(context.Background(), eligibleRecord(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Text != "Adds the login flow." {
		t.Errorf("unexpected summary text: %q", summary.Text)
	}
	if summary.Usage.Total != 130 {
		t.Errorf("unexpected usage: %+v", summary.Usage)
	}
	if mock.Calls != 1 {
		t.Errorf("expected exactly one model call, got %d", mock.Calls)
	}
}

func TestSummarizePromptContents(t *testing.T) {
	mock := NewMockLLM("ok")
	cfg := DefaultConfig()
	cfg.MaxSentences = 3
	client := NewClient(mock, cfg)

	if _, err := client.Summarize(context.Background(), eligibleRecord(), "release branch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.LastPrompt
	if !strings.Contains(prompt, "at most 3 sentences") {
		t.Error("prompt missing sentence bound")
	}
	if !strings.Contains(prompt, "Add login") {
		t.Error("prompt missing commit message")
	}
	// Every file is listed with its symbol, eligible or not.
	for _, line := range []string{"- + login.ts", "- * app.ts", "- - temp.js"} {
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt missing file listing line %q", line)
		}
	}
	// Only eligible diffs are included.
	if !strings.Contains(prompt, "+login code") {
		t.Error("prompt missing eligible diff")
	}
	if strings.Contains(prompt, "## app.ts") {
		t.Error("prompt includes diff section for ineligible file")
	}
	if !strings.Contains(prompt, "release branch") {
		t.Error("prompt missing extra context")
	}
}

func TestSummarizeNothingEligible(t *testing.T) {
	mock := NewMockLLM("never used")
	client := NewClient(mock, DefaultConfig())

	rec := eligibleRecord()
	for i := range rec.Changes {
		rec.Changes[i].EligibleForSummary = false
		rec.Changes[i].Diff = ""
	}

	_, err := client.Summarize(context.Background(), rec, "")
	if !errors.Is(err, ErrNothingToSummarize) {
		t.Fatalf("expected ErrNothingToSummarize, got %v", err)
	}
	if mock.Calls != 0 {
		t.Errorf("validation failure must not call the model, got %d calls", mock.Calls)
	}
}

func TestSummarizeUninitializedClient(t *testing.T) {
	client := NewClient(nil, DefaultConfig())

	_, err := client.Summarize(context.Background(), eligibleRecord(), "")
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestSummarizePromptTooLarge(t *testing.T) {
	mock := NewMockLLM("never used")
	cfg := DefaultConfig()
	cfg.MaxPromptTokens = 50
	client := NewClient(mock, cfg)

	rec := eligibleRecord()
	rec.Changes[0].Diff = strings.Repeat("+padding line\n", 200)
	rec.Changes[0].DiffSize = len(rec.Changes[0].Diff)

	_, err := client.Summarize(context.Background(), rec, "")

	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindPromptTooLarge {
		t.Fatalf("expected PromptTooLarge, got %v", err)
	}
	if mock.Calls != 0 {
		t.Errorf("over-budget prompt must not call the model, got %d calls", mock.Calls)
	}
}

func TestSummarizeFailureIsClassified(t *testing.T) {
	mock := NewMockLLMWithError(errors.New("insufficient_quota: billing hard limit reached (429)"))
	client := NewClient(mock, DefaultConfig())

	_, err := client.Summarize(context.Background(), eligibleRecord(), "")

	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if serr.Kind != KindQuotaExceeded {
		t.Errorf("expected QuotaExceeded, got %s", serr.Kind)
	}
}

func TestVerifyConnection(t *testing.T) {
	mock := NewMockLLM("OK")
	client := NewClient(mock, DefaultConfig())

	if err := client.VerifyConnection(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls != 1 {
		t.Errorf("expected one call, got %d", mock.Calls)
	}

	empty := NewMockLLM("")
	client = NewClient(empty, DefaultConfig())
	if err := client.VerifyConnection(context.Background()); err == nil {
		t.Error("expected empty response to fail verification")
	}
}
