package search

import "github.com/poiesic/docquery/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterDocumentScan(documentCount int)
	DocumentHit(documentID core.ID, filename string, hits int)
	Finish(matches []*core.ChunkMatch)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)        {}
func (n *noopMonitor) AfterDocumentScan(_ int)                {}
func (n *noopMonitor) DocumentHit(_ core.ID, _ string, _ int) {}
func (n *noopMonitor) Finish(_ []*core.ChunkMatch)            {}
