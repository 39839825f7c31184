package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/auth"
	"github.com/poiesic/docquery/ingest"
	"github.com/poiesic/docquery/qa"
	"github.com/poiesic/docquery/search"
	"github.com/poiesic/docquery/storage/badger"
)

type testServer struct {
	server    *Server
	embedder  *mock.MockEmbedder
	generator *mock.MockAnswerGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users, docs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docs.Close()
		users.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockAnswerGenerator()

	pipeline, err := ingest.NewPipeline(docs, embedder)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(docs, embedder)
	require.NoError(t, err)

	engine, err := qa.NewEngine(searcher, generator)
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager("test-secret", 0)
	require.NoError(t, err)

	server, err := New(Options{
		Users:     users,
		Documents: docs,
		Pipeline:  pipeline,
		Engine:    engine,
		Tokens:    tokens,
	})
	require.NoError(t, err)

	return &testServer{
		server:    server,
		embedder:  embedder,
		generator: generator,
	}
}

// do executes a JSON request against the server and decodes the response.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec.Code, decoded
}

// list fetches /api/documents, which responds with a bare JSON array.
func (ts *testServer) list(t *testing.T, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec.Code, decoded
}

// upload posts a multipart file to /api/documents/upload.
func (ts *testServer) upload(t *testing.T, token, filename string, content []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec.Code, decoded
}

// register creates an account and returns its bearer token.
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()
	code, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code, "register failed: %v", body)
	return body["token"].(string)
}

// buildWorkbook creates a small xlsx with a header row and data rows.
func buildWorkbook(t *testing.T, headers []string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.NotEmpty(t, user["id"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice Again",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", body["detail"])
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["detail"])

	code, body = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["detail"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/documents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authenticated", body["detail"])

	code, body = ts.do(t, http.MethodGet, "/api/documents", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", body["detail"])
}

func TestUpload_Excel(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	workbook := buildWorkbook(t,
		[]string{"Product", "Price"},
		[][]any{{"Widget", 10}, {"Gadget", 25}})

	code, body := ts.upload(t, token, "inventory.xlsx", workbook)
	require.Equal(t, http.StatusOK, code, "upload failed: %v", body)
	assert.Equal(t, "Document uploaded and processed successfully", body["message"])
	assert.Equal(t, "inventory.xlsx", body["filename"])
	assert.Equal(t, "excel", body["file_type"])
	assert.Equal(t, float64(2), body["chunks_count"])
	assert.NotEmpty(t, body["document_id"])
}

func TestUpload_JSON(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	content := []byte(`[{"name": "Widget", "price": 10}, {"name": "Gadget", "price": 25}]`)
	code, body := ts.upload(t, token, "inventory.json", content)
	require.Equal(t, http.StatusOK, code, "upload failed: %v", body)
	assert.Equal(t, "json", body["file_type"])
	assert.Equal(t, float64(2), body["chunks_count"])
}

func TestUpload_UnsupportedType(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	code, body := ts.upload(t, token, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Unsupported file type. Please upload Excel or JSON files.", body["detail"])
}

func TestUpload_Duplicate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	content := []byte(`[{"name": "Widget"}]`)
	code, _ := ts.upload(t, token, "inventory.json", content)
	require.Equal(t, http.StatusOK, code)

	code, body := ts.upload(t, token, "renamed.json", content)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Document already uploaded", body["detail"])
}

func TestUpload_NoFile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/documents/upload", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No file provided", body["detail"])
}

func TestUpload_EmbeddingFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	ts.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}

	code, body := ts.upload(t, token, "inventory.json", []byte(`[{"name": "Widget"}]`))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error generating embeddings", body["detail"])
}

func TestListDocuments(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	code, docs := ts.list(t, token)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, docs)

	_, _ = ts.upload(t, token, "first.json", []byte(`[{"a": 1}]`))
	_, _ = ts.upload(t, token, "second.json", []byte(`[{"b": 2}]`))

	code, docs = ts.list(t, token)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, docs, 2)

	first := docs[0]
	assert.Equal(t, "first.json", first["filename"])
	assert.Equal(t, "json", first["file_type"])
	assert.Equal(t, true, first["processed"])
	assert.Equal(t, float64(1), first["chunks_count"])
	assert.NotEmpty(t, first["uploaded_at"])
}

func TestListDocuments_OwnerIsolation(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.register(t, "alice@example.com")
	bobToken := ts.register(t, "bob@example.com")

	_, _ = ts.upload(t, aliceToken, "private.json", []byte(`[{"a": 1}]`))

	code, docs := ts.list(t, bobToken)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, docs)
}

func TestDeleteDocument(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	_, uploaded := ts.upload(t, token, "inventory.json", []byte(`[{"a": 1}]`))
	docID := uploaded["document_id"].(string)

	code, body := ts.do(t, http.MethodDelete, "/api/documents/"+docID, token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Document deleted successfully", body["message"])

	code, body = ts.do(t, http.MethodDelete, "/api/documents/"+docID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Document not found", body["detail"])

	code, body = ts.do(t, http.MethodDelete, "/api/documents/not-a-number", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Document not found", body["detail"])
}

func TestQuery(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	_, _ = ts.upload(t, token, "inventory.json",
		[]byte(`[{"product": "Widget", "price": 10}]`))

	ts.generator.GenerateAnswerFunc = func(ctx context.Context, req ai.AnswerRequest) (string, error) {
		return "The Widget costs 10.", nil
	}

	code, body := ts.do(t, http.MethodPost, "/api/query", token, map[string]string{
		"query": "What does the Widget cost?",
	})
	require.Equal(t, http.StatusOK, code, "query failed: %v", body)
	assert.Equal(t, "The Widget costs 10.", body["answer"])
	assert.Equal(t, []any{"inventory.json"}, body["sources"])
	assert.NotEmpty(t, body["context_used"])

	// Language defaults to English
	assert.Equal(t, "en", ts.generator.LastRequest().Language)
}

func TestQuery_Empty(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")
	_, _ = ts.upload(t, token, "inventory.json", []byte(`[{"a": 1}]`))

	code, body := ts.do(t, http.MethodPost, "/api/query", token, map[string]string{
		"query": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Query cannot be empty", body["detail"])
}

func TestQuery_NoDocuments(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	code, body := ts.do(t, http.MethodPost, "/api/query", token, map[string]string{
		"query": "anything",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No processed documents found. Please upload documents first.", body["detail"])
}

func TestQuery_GeneratorFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")
	_, _ = ts.upload(t, token, "inventory.json", []byte(`[{"a": 1}]`))

	ts.generator.GenerateAnswerFunc = func(ctx context.Context, req ai.AnswerRequest) (string, error) {
		return "", errors.New("model unavailable")
	}

	code, body := ts.do(t, http.MethodPost, "/api/query", token, map[string]string{
		"query": "anything",
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error generating response", body["detail"])
}

func TestQuery_EmbeddingFailure(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")
	_, _ = ts.upload(t, token, "inventory.json", []byte(`[{"a": 1}]`))

	ts.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("service down")
	}

	code, body := ts.do(t, http.MethodPost, "/api/query", token, map[string]string{
		"query": "anything",
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error processing query", body["detail"])
}

func TestGenerateReport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice@example.com")

	_, _ = ts.upload(t, token, "inventory.json",
		[]byte(`[{"product": "Widget", "price": 10}, {"product": "Gadget", "price": 25}]`))

	code, body := ts.do(t, http.MethodPost, "/api/reports/generate", token, map[string]string{
		"query": "List the products",
	})
	require.Equal(t, http.StatusOK, code, "report failed: %v", body)
	assert.Equal(t, "Excel report generated successfully", body["message"])
	assert.Equal(t, "List the products", body["query"])
	assert.NotEmpty(t, body["answer"])
	assert.Equal(t, []any{"inventory.json"}, body["sources"])

	filename := body["filename"].(string)
	assert.True(t, strings.HasPrefix(filename, "rag-report-"), filename)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"), filename)

	// The payload decodes into a readable workbook
	raw, err := base64.StdEncoding.DecodeString(body["excel_data"].(string))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("RAG Report")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Contains(t, fmt.Sprint(rows[0]), "price")
}
