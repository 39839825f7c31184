package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// BatchProcessor regenerates embeddings for batches of documents.
type BatchProcessor struct {
	repo           storage.DocumentRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.DocumentRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process reembeds every chunk of every document in the batch and persists
// the updated documents. Returns the total number of chunks reembedded.
func (bp *BatchProcessor) Process(ctx context.Context, docs []*core.Document) (int, error) {
	chunks := 0
	for _, doc := range docs {
		n, err := bp.processDocument(ctx, doc)
		if err != nil {
			return chunks, fmt.Errorf("document %d (%s): %w", doc.Id, doc.Filename, err)
		}
		chunks += n
	}
	return chunks, nil
}

func (bp *BatchProcessor) processDocument(ctx context.Context, doc *core.Document) (int, error) {
	if len(doc.Chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(doc.Chunks))
	for i := range doc.Chunks {
		texts[i] = doc.Chunks[i].Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(doc.Chunks) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(doc.Chunks), len(embeddings))
	}

	for i := range doc.Chunks {
		doc.Chunks[i].Vector = embeddings[i]
	}
	doc.Processed = true

	if _, err := bp.repo.UpdateDocument(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to update document: %w", err)
	}

	return len(doc.Chunks), nil
}
