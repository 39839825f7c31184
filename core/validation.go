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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateUser validates a User according to domain rules.
//
// Validation rules:
//   - Email must be non-empty and contain "@"
//   - Name must not be empty
//   - PasswordHash must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - ID (0 is valid from database sequences)
func ValidateUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUser)
	}

	if !IsValidEmail(user.Email) {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyEmail)
	}

	if user.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyName)
	}

	if user.PasswordHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyPasswordHash)
	}

	if !user.CreatedAt.IsZero() && !IsValidTimestamp(user.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - OwnerId must be non-zero
//   - Filename must not be empty
//   - FileType must be valid (Excel or JSON)
//
// NOT validated (populated by the ingestion pipeline):
//   - Chunks and vectors (can be empty until embedded)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.OwnerId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingOwner)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFilename)
	}

	if err := ValidateFileType(doc.FileType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateFileType validates that a FileType has a valid value.
func ValidateFileType(t FileType) error {
	if t != FileTypeExcel && t != FileTypeJSON {
		return fmt.Errorf("%w: value %d", ErrInvalidFileType, t)
	}
	return nil
}

// IsValidEmail checks that an address is plausibly deliverable.
// Intentionally loose: non-empty, contains "@" with text on both sides.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
