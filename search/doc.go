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


// Package search implements per-document semantic retrieval over a user's
// uploaded documents.
//
// The query is embedded once, then every processed document the user owns
// is scanned: chunks scoring above the relevance threshold are ranked by
// cosine similarity and the best few per document are kept. The per-document
// winners are merged and re-ranked globally, and the overall top chunks are
// returned together with the contributing filenames.
package search
