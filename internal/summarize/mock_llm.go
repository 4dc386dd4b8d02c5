package summarize

import "context"

// MockLLM is a deterministic LLM implementation for testing. It records every
// prompt it receives so tests can assert on request construction and call
// counts.
type MockLLM struct {
	// Response is the fixed text returned by Complete.
	Response string

	// Usage is returned alongside Response.
	Usage TokenUsage

	// Error, if set, is returned by Complete instead of a response.
	Error error

	// Calls counts invocations of Complete.
	Calls int

	// LastPrompt stores the most recent prompt passed to Complete.
	LastPrompt string
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Complete returns the configured response or error.
func (m *MockLLM) Complete(ctx context.Context, prompt string) (Completion, error) {
	m.Calls++
	m.LastPrompt = prompt

	if m.Error != nil {
		return Completion{}, m.Error
	}
	return Completion{Text: m.Response, Usage: m.Usage}, nil
}
