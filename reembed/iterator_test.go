package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/storage/badger"
)

func newTestDocs(t *testing.T) storage.DocumentRepository {
	t.Helper()

	users, docs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docs.Close()
		users.Close()
		backend.Close()
	})
	return docs
}

func seedDocuments(t *testing.T, docs storage.DocumentRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		filename := fmt.Sprintf("doc-%03d.json", i)
		_, err := docs.AddDocument(context.Background(), &core.Document{
			OwnerId:     core.ID(i%3 + 1),
			Filename:    filename,
			FileType:    core.FileTypeJSON,
			Fingerprint: core.IDFromContent(filename),
			Chunks: []core.Chunk{
				{Text: "a: 1", Vector: []float32{1, 0}},
				{Text: "b: 2", Vector: []float32{0, 1}},
			},
			Processed: true,
		})
		require.NoError(t, err)
	}
}

func TestDocumentIterator_Batches(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 7)

	iterator := NewDocumentIterator(docs, 3)

	var batchSizes []int
	total := 0
	err := iterator.ForEach(context.Background(), func(batch []*core.Document) error {
		batchSizes = append(batchSizes, len(batch))
		total += len(batch)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
	assert.Equal(t, 7, total)
}

func TestDocumentIterator_Empty(t *testing.T) {
	docs := newTestDocs(t)
	iterator := NewDocumentIterator(docs, 10)

	calls := 0
	err := iterator.ForEach(context.Background(), func(batch []*core.Document) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestDocumentIterator_StopsOnError(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 5)

	iterator := NewDocumentIterator(docs, 2)

	calls := 0
	wantErr := errors.New("stop")
	err := iterator.ForEach(context.Background(), func(batch []*core.Document) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestDocumentIterator_ContextCancelled(t *testing.T) {
	docs := newTestDocs(t)
	seedDocuments(t, docs, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iterator := NewDocumentIterator(docs, 1)
	err := iterator.ForEach(ctx, func(batch []*core.Document) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDocumentIterator_DefaultBatchSize(t *testing.T) {
	docs := newTestDocs(t)
	iterator := NewDocumentIterator(docs, 0)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}
