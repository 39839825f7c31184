package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

const defaultBatchSize = 64

// Pipeline turns uploaded file content into embedded, persisted documents.
// Embedding requests are fanned out over a worker pool in fixed-size batches.
type Pipeline struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per API call.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(documents storage.DocumentRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest chunks, embeds, and stores an uploaded file for the given owner.
// The whole file is processed before returning, so the stored document is
// always fully embedded (Processed=true).
//
// Returns ErrUnsupportedType for unknown extensions, ErrNoContent when the
// file yields no chunks, and ErrDuplicate when the owner already uploaded
// identical content.
func (p *Pipeline) Ingest(ctx context.Context, owner core.ID, filename string, content []byte) (*core.Document, error) {
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, err
	}

	fingerprint := core.IDFromBytes(content)
	if _, err := p.documents.FindDocumentByFingerprint(ctx, owner, fingerprint); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, filename)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	var texts []string
	switch fileType {
	case core.FileTypeExcel:
		texts, err = ChunkExcel(content)
	case core.FileTypeJSON:
		texts, err = ChunkJSON(content)
	}
	if err != nil {
		return nil, err
	}

	p.logger.Info("ingesting document",
		"owner", owner,
		"filename", filename,
		"type", fileType,
		"chunks", len(texts))

	vectors, err := p.embedChunks(ctx, texts)
	if err != nil {
		p.logger.Error("error generating embeddings", "filename", filename, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	chunks := make([]core.Chunk, len(texts))
	for i := range texts {
		chunks[i] = core.Chunk{Text: texts[i], Vector: vectors[i]}
	}

	doc := &core.Document{
		OwnerId:     owner,
		Filename:    filename,
		FileType:    fileType,
		Fingerprint: fingerprint,
		Chunks:      chunks,
		Processed:   true,
	}

	added, err := p.documents.AddDocument(ctx, doc)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, filename)
		}
		return nil, err
	}

	return added, nil
}

// embedChunks embeds texts in batches distributed over the worker pool.
// The returned vectors are in the same order as the input texts.
func (p *Pipeline) embedChunks(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batchStart := start
		batch := texts[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			embedded, err := p.embedder.EmbedTexts(ctx, batch)
			if err == nil && len(embedded) != len(batch) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embedded))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			copy(vectors[batchStart:], embedded)
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
