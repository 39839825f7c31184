package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/poiesic/docquery/qa"
	"github.com/poiesic/docquery/report"
	"github.com/poiesic/docquery/search"
)

type queryRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	answer, err := s.engine.Ask(r.Context(), user.Id, req.Query, req.Language)
	if err != nil {
		s.respondAskError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"answer":       answer.Answer,
		"sources":      answer.Sources,
		"context_used": answer.ContextUsed,
	})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	answer, err := s.engine.Ask(r.Context(), user.Id, req.Query, req.Language)
	if err != nil {
		s.respondAskError(w, err)
		return
	}

	docs, err := s.documents.GetDocumentsByOwner(r.Context(), user.Id)
	if err != nil {
		s.logger.Error("error counting documents", "userID", user.Id, "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	processed := 0
	for _, doc := range docs {
		if doc.Processed {
			processed++
		}
	}

	now := time.Now()
	table := report.BuildTable(answer.ContextUsed, report.Summary{
		Query:         req.Query,
		Answer:        answer.Answer,
		Language:      req.Language,
		GeneratedAt:   now,
		Sources:       answer.Sources,
		DocumentCount: processed,
	})

	workbook, err := report.WriteWorkbook(table)
	if err != nil {
		s.logger.Error("error writing report workbook", "err", err)
		respondError(w, http.StatusInternalServerError, "Error generating response")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Excel report generated successfully",
		"excel_data": base64.StdEncoding.EncodeToString(workbook),
		"filename":   report.Filename(now),
		"query":      req.Query,
		"answer":     answer.Answer,
		"sources":    answer.Sources,
	})
}

// respondAskError maps question answering failures to API errors.
func (s *Server) respondAskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qa.ErrEmptyQuery):
		respondError(w, http.StatusBadRequest, "Query cannot be empty")
	case errors.Is(err, search.ErrNoDocuments):
		respondError(w, http.StatusBadRequest, "No processed documents found. Please upload documents first.")
	case errors.Is(err, search.ErrEmbeddingFailed):
		s.logger.Error("error embedding query", "err", err)
		respondError(w, http.StatusInternalServerError, "Error processing query")
	default:
		s.logger.Error("error generating answer", "err", err)
		respondError(w, http.StatusInternalServerError, "Error generating response")
	}
}
