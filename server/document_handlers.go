package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/ingest"
	"github.com/poiesic/docquery/storage"
)

// maxUploadSize bounds how much of a multipart upload is held in memory.
const maxUploadSize = 32 << 20

type documentPayload struct {
	Id          string `json:"id"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	UploadedAt  string `json:"uploaded_at"`
	Processed   bool   `json:"processed"`
	ChunksCount int    `json:"chunks_count"`
}

func documentToPayload(doc *core.Document) documentPayload {
	return documentPayload{
		Id:          strconv.FormatUint(uint64(doc.Id), 10),
		Filename:    doc.Filename,
		FileType:    doc.FileType.String(),
		UploadedAt:  doc.UploadedAt.UTC().Format(time.RFC3339),
		Processed:   doc.Processed,
		ChunksCount: doc.ChunkCount(),
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not process file content")
		return
	}

	doc, err := s.pipeline.Ingest(r.Context(), user.Id, header.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnsupportedType):
			respondError(w, http.StatusBadRequest, "Unsupported file type. Please upload Excel or JSON files.")
		case errors.Is(err, ingest.ErrNoContent):
			respondError(w, http.StatusBadRequest, "Could not process file content")
		case errors.Is(err, ingest.ErrDuplicate):
			respondError(w, http.StatusConflict, "Document already uploaded")
		case errors.Is(err, ingest.ErrEmbeddingFailed):
			respondError(w, http.StatusInternalServerError, "Error generating embeddings")
		default:
			s.logger.Error("error ingesting document", "filename", header.Filename, "err", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info("document uploaded",
		"userID", user.Id,
		"documentID", doc.Id,
		"filename", doc.Filename,
		"chunks", doc.ChunkCount())

	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "Document uploaded and processed successfully",
		"document_id":  strconv.FormatUint(uint64(doc.Id), 10),
		"filename":     doc.Filename,
		"chunks_count": doc.ChunkCount(),
		"file_type":    doc.FileType.String(),
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	docs, err := s.documents.GetDocumentsByOwner(r.Context(), user.Id)
	if err != nil {
		s.logger.Error("error listing documents", "userID", user.Id, "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	payload := make([]documentPayload, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, documentToPayload(doc))
	}

	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "documentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Document not found")
		return
	}

	if err := s.documents.DeleteDocument(r.Context(), user.Id, core.ID(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		s.logger.Error("error deleting document", "documentID", id, "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Document deleted successfully",
	})
}
