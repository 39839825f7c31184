package storage

import (
	"context"

	"github.com/poiesic/docquery/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// UserRepository provides operations for managing user accounts.
type UserRepository interface {
	Repository
	// AddUser adds a user to storage.
	// For a user with ID=0, generates a new ID from sequence.
	// Sets CreatedAt timestamp if not already set.
	// Returns ErrDuplicateKey if the email is already registered.
	// Returns the user with generated ID and timestamps populated.
	AddUser(ctx context.Context, user *core.User) (*core.User, error)

	// GetUser retrieves a single user by ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetUser(ctx context.Context, id core.ID) (*core.User, error)

	// FindUserByEmail finds a user by their email address.
	// Returns ErrNotFound if no matching user exists.
	FindUserByEmail(ctx context.Context, email string) (*core.User, error)
}

// DocumentRepository provides operations for managing documents.
// All operations are scoped to an owning user: a document is only
// visible to the user that uploaded it.
type DocumentRepository interface {
	Repository
	// AddDocument adds a document to storage.
	// For a document with ID=0, generates a new ID from sequence.
	// Sets UploadedAt timestamp if not already set.
	// Returns ErrDuplicateKey if the owner already has a document
	// with the same content fingerprint.
	// Returns the document with generated ID and timestamps populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// UpdateDocument updates an existing document.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// DeleteDocument removes a document owned by the given user.
	// Also removes the fingerprint index entry.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, owner, id core.ID) error

	// GetDocument retrieves a single document owned by the given user.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, owner, id core.ID) (*core.Document, error)

	// GetDocumentsByOwner retrieves all documents owned by a user,
	// ordered by ID ascending (upload order).
	GetDocumentsByOwner(ctx context.Context, owner core.ID) ([]*core.Document, error)

	// FindDocumentByFingerprint finds an owner's document by content fingerprint.
	// Returns ErrNotFound if no matching document exists.
	FindDocumentByFingerprint(ctx context.Context, owner, fingerprint core.ID) (*core.Document, error)

	// GetAllDocuments retrieves every document across all owners.
	// Intended for maintenance jobs such as re-embedding.
	GetAllDocuments(ctx context.Context) ([]*core.Document, error)
}
