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

package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/poiesic/docquery/auth"
	"github.com/poiesic/docquery/ingest"
	"github.com/poiesic/docquery/qa"
	"github.com/poiesic/docquery/storage"
)

// Options carries the dependencies a Server needs.
type Options struct {
	// Users resolves authenticated accounts.
	Users storage.UserRepository

	// Documents lists and deletes stored documents.
	Documents storage.DocumentRepository

	// Pipeline ingests uploaded files.
	Pipeline *ingest.Pipeline

	// Engine answers questions against stored documents.
	Engine *qa.Engine

	// Tokens issues and verifies session tokens.
	Tokens *auth.TokenManager

	// AllowedOrigins configures CORS. Defaults to all origins.
	AllowedOrigins []string

	// Logger receives request-level diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server handles the HTTP API.
type Server struct {
	users     storage.UserRepository
	documents storage.DocumentRepository
	pipeline  *ingest.Pipeline
	engine    *qa.Engine
	tokens    *auth.TokenManager
	router    chi.Router
	logger    *slog.Logger
}

// New creates a Server from the given options.
func New(opts Options) (*Server, error) {
	if opts.Users == nil {
		return nil, ErrUserRepositoryRequired
	}
	if opts.Documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if opts.Pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if opts.Engine == nil {
		return nil, ErrEngineRequired
	}
	if opts.Tokens == nil {
		return nil, ErrTokenManagerRequired
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		users:     opts.Users,
		documents: opts.Documents,
		pipeline:  opts.Pipeline,
		engine:    opts.Engine,
		tokens:    opts.Tokens,
		logger:    logger.With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/documents/upload", s.handleUpload)
			r.Get("/documents", s.handleListDocuments)
			r.Delete("/documents/{documentID}", s.handleDeleteDocument)
			r.Post("/query", s.handleQuery)
			r.Post("/reports/generate", s.handleGenerateReport)
		})
	})
	s.router = r

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
