package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/docquery/ai"
)

// MockAnswerGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via a function field.
type MockAnswerGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, returns a canned answer echoing the query.
	GenerateAnswerFunc func(ctx context.Context, req ai.AnswerRequest) (string, error)

	callCount int
	lastReq   ai.AnswerRequest
}

// NewMockAnswerGenerator creates a mock answer generator with canned behavior.
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{}
}

// GenerateAnswer returns a deterministic answer referencing the query.
func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, req ai.AnswerRequest) (string, error) {
	m.callCount++
	m.lastReq = req

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, req)
	}

	return fmt.Sprintf("Answer to %q based on the provided documents.", req.Query), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockAnswerGenerator) CallCount() int {
	return m.callCount
}

// LastRequest returns the most recent request passed to GenerateAnswer.
func (m *MockAnswerGenerator) LastRequest() ai.AnswerRequest {
	return m.lastReq
}

// Reset clears the call count and any injected behavior.
func (m *MockAnswerGenerator) Reset() {
	m.callCount = 0
	m.lastReq = ai.AnswerRequest{}
	m.GenerateAnswerFunc = nil
}
