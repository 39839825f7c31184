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

import "errors"

var (
	// ErrUserRepositoryRequired indicates New was called without a user repository.
	ErrUserRepositoryRequired = errors.New("user repository is required")

	// ErrDocumentRepositoryRequired indicates New was called without a document repository.
	ErrDocumentRepositoryRequired = errors.New("document repository is required")

	// ErrPipelineRequired indicates New was called without an ingest pipeline.
	ErrPipelineRequired = errors.New("ingest pipeline is required")

	// ErrEngineRequired indicates New was called without a Q&A engine.
	ErrEngineRequired = errors.New("qa engine is required")

	// ErrTokenManagerRequired indicates New was called without a token manager.
	ErrTokenManagerRequired = errors.New("token manager is required")
)
