package qa

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/search"
)

// Fixed responses when retrieval finds nothing relevant.
const (
	noAnswerEN = "Sorry, I couldn't find relevant information in your documents to answer that question."
	noAnswerID = "Maaf, saya tidak dapat menemukan informasi yang relevan dalam dokumen Anda untuk menjawab pertanyaan tersebut."
)

// Answer is a grounded response to a question.
type Answer struct {
	// Answer is the synthesized natural-language response.
	Answer string

	// Sources lists the filenames of documents that contributed context.
	Sources []string

	// ContextUsed contains the chunk texts the answer is grounded in.
	ContextUsed []string
}

// Engine answers questions over a user's documents.
type Engine struct {
	searcher  *search.Searcher
	generator ai.AnswerGenerator
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a question answering engine.
func NewEngine(searcher *search.Searcher, generator ai.AnswerGenerator, opts ...Option) (*Engine, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	e := &Engine{
		searcher:  searcher,
		generator: generator,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Ask answers the query from the owner's documents in the given language
// ("en" or "id").
//
// Returns ErrEmptyQuery for blank queries and search.ErrNoDocuments when the
// owner has nothing to search. When retrieval yields no relevant chunks, the
// fixed no-answer message for the language is returned with empty sources.
func (e *Engine) Ask(ctx context.Context, owner core.ID, query, language string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	results, err := e.searcher.Search(ctx, owner, query)
	if err != nil {
		return nil, err
	}

	if len(results.Matches) == 0 {
		e.logger.Info("no relevant chunks found", "owner", owner)
		return &Answer{
			Answer:      NoAnswerMessage(language),
			Sources:     []string{},
			ContextUsed: []string{},
		}, nil
	}

	contextUsed := make([]string, len(results.Matches))
	for i, match := range results.Matches {
		contextUsed[i] = match.Text
	}

	answer, err := e.generator.GenerateAnswer(ctx, ai.AnswerRequest{
		Query:    query,
		Context:  strings.Join(contextUsed, "\n\n"),
		Language: language,
	})
	if err != nil {
		e.logger.Error("error generating answer", "owner", owner, "err", err)
		return nil, err
	}

	return &Answer{
		Answer:      answer,
		Sources:     results.Sources,
		ContextUsed: contextUsed,
	}, nil
}

// NoAnswerMessage returns the fixed no-answer response for a language.
func NoAnswerMessage(language string) string {
	if language == "id" {
		return noAnswerID
	}
	return noAnswerEN
}
