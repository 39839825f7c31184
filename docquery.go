// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docquery answers natural-language questions over uploaded
// documents. Excel and JSON files are chunked row by row, embedded, and
// stored per user; questions are answered from the most relevant chunks.
package docquery

import (
	"log/slog"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/openai"
	"github.com/poiesic/docquery/ingest"
	"github.com/poiesic/docquery/qa"
	"github.com/poiesic/docquery/search"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/storage/badger"
)

// Service bundles the storage backend, repositories, and AI provider
// behind a single handle with ordered shutdown.
type Service struct {
	backend   *badger.Backend
	users     storage.UserRepository
	documents storage.DocumentRepository
	provider  ai.Provider
	embedder  ai.Embedder
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig  *ai.Config
	inMemory  bool
	cacheSize int
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithInMemoryStorage keeps all data in memory instead of on disk.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithEmbeddingCacheSize sets the embedding LRU cache capacity.
// A size <= 0 disables caching.
func WithEmbeddingCacheSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheSize = size
	}
}

// NewService opens the database at filePath and wires the AI provider.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:  ai.DefaultConfig(),
		cacheSize: ai.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	users, err := badger.NewUserRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		users.Close()
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		documents.Close()
		users.Close()
		backend.Close()
		return nil, err
	}

	embedder := provider.Embedder()
	if options.cacheSize > 0 {
		embedder, err = ai.NewCachedEmbedder(embedder, options.cacheSize)
		if err != nil {
			provider.Close()
			documents.Close()
			users.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:   backend,
		users:     users,
		documents: documents,
		provider:  provider,
		embedder:  embedder,
		logger:    slog.Default(),
	}, nil
}

// Close shuts everything down, AI provider first, backend last.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.documents.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.users.Close(); err != nil {
		s.logger.Error("error closing user repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) UserRepository() storage.UserRepository {
	return s.users
}

func (s *Service) DocumentRepository() storage.DocumentRepository {
	return s.documents
}

// Embedder returns the (possibly cached) embedder used across the service.
func (s *Service) Embedder() ai.Embedder {
	return s.embedder
}

func (s *Service) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(s.documents, s.embedder, opts...)
}

func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.documents, s.embedder, opts...)
}

func (s *Service) NewEngine(opts ...qa.Option) (*qa.Engine, error) {
	searcher, err := s.NewSearcher()
	if err != nil {
		return nil, err
	}
	return qa.NewEngine(searcher, s.provider.AnswerGenerator(), opts...)
}
