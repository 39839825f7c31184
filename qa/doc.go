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


// Package qa answers natural-language questions over a user's documents.
//
// The engine retrieves the most relevant chunks via the search package,
// assembles them into a grounding context, and asks the answer generator
// to synthesize a response. When retrieval finds nothing relevant, a fixed
// no-answer message is returned in the requested language (English or
// Indonesian) without calling the generator.
package qa
