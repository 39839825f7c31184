package mock

import "github.com/poiesic/docquery/ai"

// MockProvider aggregates the mock embedder and generator as an ai.Provider.
type MockProvider struct {
	MockEmbedder  *MockEmbedder
	MockGenerator *MockAnswerGenerator
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by fresh mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder:  NewMockEmbedder(),
		MockGenerator: NewMockAnswerGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// AnswerGenerator returns the mock answer synthesis service.
func (p *MockProvider) AnswerGenerator() ai.AnswerGenerator {
	return p.MockGenerator
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
