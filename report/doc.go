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


// Package report renders query results as downloadable Excel workbooks.
//
// Retrieved chunks in "key: value | key: value" form are parsed back into
// tabular rows; when none of the context is tabular, a single summary row
// describing the query and its answer is emitted instead. The table is
// written to an xlsx workbook with a single "RAG Report" sheet.
package report
