package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestReembedder_Run(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 5)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{0.5, 0.5, 0.5}
		}
		return out, nil
	}

	var buf bytes.Buffer
	reembedder := NewReembedder(docs, embedder, testConfig(), &buf)
	require.NoError(t, reembedder.Run(context.Background()))

	assert.Contains(t, buf.String(), "Starting reembedding of 5 documents")
	assert.Contains(t, buf.String(), "Reembedding complete. Processed 5 documents (10 chunks)")

	// Every stored vector was replaced
	all, err := docs.GetAllDocuments(context.Background())
	require.NoError(t, err)
	for _, doc := range all {
		assert.True(t, doc.Processed)
		for _, chunk := range doc.Chunks {
			assert.Equal(t, []float32{0.5, 0.5, 0.5}, chunk.Vector)
		}
	}
}

func TestReembedder_EmptyDatabase(t *testing.T) {
	docs := newTestDocs(t)
	embedder := mock.NewMockEmbedder()

	var buf bytes.Buffer
	reembedder := NewReembedder(docs, embedder, testConfig(), &buf)
	require.NoError(t, reembedder.Run(context.Background()))

	assert.Contains(t, buf.String(), "No documents found")
}

func TestReembedder_RetriesTransientFailures(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 1)

	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1}
		}
		return out, nil
	}

	var buf bytes.Buffer
	reembedder := NewReembedder(docs, embedder, testConfig(), &buf)
	require.NoError(t, reembedder.Run(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestReembedder_FailsAfterRetriesExhausted(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 1)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("permanent")
	}

	var buf bytes.Buffer
	reembedder := NewReembedder(docs, embedder, testConfig(), &buf)
	err := reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 1)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil // one vector for two chunks
	}

	all, err := docs.GetAllDocuments(context.Background())
	require.NoError(t, err)

	processor := NewBatchProcessor(docs, embedder, 1, time.Millisecond)
	_, err = processor.Process(context.Background(), all)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestBatchProcessor_SkipsEmptyDocuments(t *testing.T) {
	docs := newTestDocs(t)

	embedder := mock.NewMockEmbedder()
	processor := NewBatchProcessor(docs, embedder, 1, time.Millisecond)

	chunks, err := processor.Process(context.Background(), []*core.Document{
		{Id: 1, Filename: "empty.json"},
	})
	require.NoError(t, err)
	assert.Zero(t, chunks)
	assert.Zero(t, embedder.CallCount())
}
