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


// Package ai defines the AI service abstractions used by docquery.
//
// Two services are defined:
//
//   - Embedder: generates vector embeddings for document chunks and queries
//   - AnswerGenerator: synthesizes grounded natural-language answers from
//     retrieved document context
//
// The Provider interface aggregates both services for convenient
// initialization and lifecycle management. The openai subpackage implements
// these interfaces against any OpenAI-compatible API (OpenAI itself, Ollama,
// LocalAI, vLLM, etc.), and the mock subpackage provides deterministic
// implementations for testing.
//
// All public constructors return interface types to keep callers decoupled
// from the concrete backing service.
package ai
