package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

const (
	// defaultPerDocumentHits caps how many chunks each document may contribute.
	defaultPerDocumentHits = 3

	// defaultMaxHits caps the merged result set across all documents.
	defaultMaxHits = 5

	// defaultMinScore is the relevance threshold; weaker matches are discarded.
	defaultMinScore = 0.1
)

// Results holds the outcome of a retrieval pass.
type Results struct {
	// Matches are the best chunks across all documents, ranked by score.
	Matches []*core.ChunkMatch

	// Sources lists the filename of every document that contributed at
	// least one hit, in document order.
	Sources []string
}

// Searcher retrieves the most relevant document chunks for a query.
type Searcher struct {
	documents       storage.DocumentRepository
	embedder        ai.Embedder
	logger          *slog.Logger
	perDocumentHits int
	maxHits         int
	minScore        float32
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPerDocumentHits sets how many chunks each document may contribute.
// Values below 1 are clamped to 1. Default is 3.
func WithPerDocumentHits(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.perDocumentHits = n
		return nil
	}
}

// WithMaxHits sets the size of the merged result set across all documents.
// Values below 1 are clamped to 1. Default is 5.
func WithMaxHits(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.maxHits = n
		return nil
	}
}

// WithMinScore sets the relevance threshold. Chunks must score strictly
// above it to be retained. Default is 0.1.
func WithMinScore(score float32) Option {
	return func(s *Searcher) error {
		s.minScore = score
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(documents storage.DocumentRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		documents:       documents,
		embedder:        embedder,
		logger:          slog.Default(),
		perDocumentHits: defaultPerDocumentHits,
		maxHits:         defaultMaxHits,
		minScore:        defaultMinScore,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search retrieves the most relevant chunks from the owner's documents.
// Returns ErrNoDocuments if the owner has no processed documents.
func (s *Searcher) Search(ctx context.Context, owner core.ID, query string) (*Results, error) {
	return s.SearchWithMonitor(ctx, owner, query, nil)
}

// SearchWithMonitor retrieves the most relevant chunks with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Each processed document is scanned independently: its chunks are scored
// by cosine similarity against the query embedding, scores at or below the
// relevance threshold are dropped, and only its best few survive. The
// survivors from all documents are then merged and re-ranked, and the
// overall best are returned.
func (s *Searcher) SearchWithMonitor(ctx context.Context, owner core.ID, query string, monitor SearchMonitor) (*Results, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	docs, err := s.documents.GetDocumentsByOwner(ctx, owner)
	if err != nil {
		s.logger.Error("error retrieving documents", "owner", owner, "err", err)
		return nil, err
	}

	processed := docs[:0]
	for _, doc := range docs {
		if doc.Processed {
			processed = append(processed, doc)
		}
	}
	if len(processed) == 0 {
		return nil, ErrNoDocuments
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	monitor.AfterQueryEmbedding(embedding)

	var (
		all     []*core.ChunkMatch
		sources []string
	)
	for _, doc := range processed {
		hits := s.scanDocument(doc, embedding)
		if len(hits) == 0 {
			continue
		}

		monitor.DocumentHit(doc.Id, doc.Filename, len(hits))
		all = append(all, hits...)
		sources = append(sources, doc.Filename)
	}
	monitor.AfterDocumentScan(len(processed))

	// Global re-rank across documents
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if len(all) > s.maxHits {
		all = all[:s.maxHits]
	}

	monitor.Finish(all)

	s.logger.Debug("search complete",
		"owner", owner,
		"documents", len(processed),
		"matches", len(all))

	return &Results{Matches: all, Sources: sources}, nil
}

// scanDocument scores a single document's chunks against the query embedding
// and returns its best hits above the relevance threshold.
func (s *Searcher) scanDocument(doc *core.Document, embedding []float32) []*core.ChunkMatch {
	var hits []*core.ChunkMatch
	for i := range doc.Chunks {
		chunk := &doc.Chunks[i]
		if len(chunk.Vector) == 0 {
			continue
		}

		score := cosineSimilarity(embedding, chunk.Vector)
		if score <= s.minScore {
			continue
		}

		hits = append(hits, &core.ChunkMatch{
			DocumentId: doc.Id,
			Filename:   doc.Filename,
			Text:       chunk.Text,
			Score:      score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > s.perDocumentHits {
		hits = hits[:s.perDocumentHits]
	}
	return hits
}
