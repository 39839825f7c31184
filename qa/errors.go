package qa

import "errors"

var (
	// ErrEmptyQuery indicates a blank or whitespace-only question.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrSearcherRequired indicates a nil searcher.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrGeneratorRequired indicates a nil answer generator.
	ErrGeneratorRequired = errors.New("answer generator required")
)
