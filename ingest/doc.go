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


// Package ingest turns uploaded files into embedded, searchable documents.
//
// Excel workbooks and JSON files are chunked row by row: each row (or array
// element) becomes one text chunk of "key: value" pairs joined with " | ".
// Chunks are embedded in parallel batches and the assembled document is
// persisted with its content fingerprint, which guards against duplicate
// uploads of identical content by the same user.
package ingest
