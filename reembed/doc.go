// Package reembed regenerates the embeddings of stored documents, for use
// after switching embedding models or providers.
//
// Documents are processed in batches with progress reporting and retry
// logic with exponential backoff around the embedding API.
package reembed
