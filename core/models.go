package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	return IDFromBytes([]byte(text))
}

// IDFromBytes generates a deterministic ID from raw bytes using BLAKE2b hashing.
// Used to fingerprint uploaded files so duplicate uploads can be detected.
func IDFromBytes(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FileType identifies the format of an uploaded document.
type FileType int

const (
	// FileTypeExcel represents .xlsx/.xls spreadsheet uploads.
	FileTypeExcel FileType = iota + 1
	// FileTypeJSON represents .json uploads.
	FileTypeJSON
)

// String returns the wire name of the file type ("excel" or "json").
func (t FileType) String() string {
	switch t {
	case FileTypeExcel:
		return "excel"
	case FileTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// User represents an account that owns documents.
type User struct {
	Id           ID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time // When the account was registered
	UpdatedAt    time.Time // When the record was last updated
}

// Chunk is a single row-level text unit extracted from an uploaded file.
// The Vector field is empty until the embedding step has run.
type Chunk struct {
	Text   string
	Vector []float32
}

// Document represents one uploaded file with its chunks and embeddings.
// All operations on documents are scoped to their owner.
type Document struct {
	Id          ID
	OwnerId     ID
	Filename    string
	FileType    FileType
	Fingerprint ID // BLAKE2b hash of the uploaded bytes, used for duplicate detection
	Chunks      []Chunk
	Processed   bool // True once every chunk carries an embedding
	UploadedAt  time.Time
	UpdatedAt   time.Time
}

// ChunkCount returns the number of chunks extracted from the document.
func (d *Document) ChunkCount() int {
	return len(d.Chunks)
}

// ChunkMatch represents a retrieved chunk with its relevance score.
type ChunkMatch struct {
	DocumentId ID
	Filename   string
	Text       string
	Score      float32
}
