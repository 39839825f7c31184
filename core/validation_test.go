package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	return &User{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestValidateUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		require.NoError(t, ValidateUser(validUser()))
	})

	t.Run("nil user", func(t *testing.T) {
		err := ValidateUser(nil)
		assert.ErrorIs(t, err, ErrInvalidUser)
	})

	t.Run("missing email", func(t *testing.T) {
		u := validUser()
		u.Email = ""
		err := ValidateUser(u)
		assert.ErrorIs(t, err, ErrInvalidUser)
		assert.ErrorIs(t, err, ErrEmptyEmail)
	})

	t.Run("malformed email", func(t *testing.T) {
		u := validUser()
		u.Email = "not-an-address"
		assert.ErrorIs(t, ValidateUser(u), ErrEmptyEmail)
	})

	t.Run("missing name", func(t *testing.T) {
		u := validUser()
		u.Name = ""
		assert.ErrorIs(t, ValidateUser(u), ErrEmptyName)
	})

	t.Run("missing password hash", func(t *testing.T) {
		u := validUser()
		u.PasswordHash = ""
		assert.ErrorIs(t, ValidateUser(u), ErrEmptyPasswordHash)
	})

	t.Run("future created at", func(t *testing.T) {
		u := validUser()
		u.CreatedAt = time.Now().Add(1 * time.Hour)
		assert.ErrorIs(t, ValidateUser(u), ErrInvalidTimestamp)
	})
}

func TestValidateDocument(t *testing.T) {
	valid := func() *Document {
		return &Document{
			OwnerId:  1,
			Filename: "report.xlsx",
			FileType: FileTypeExcel,
		}
	}

	t.Run("valid document", func(t *testing.T) {
		require.NoError(t, ValidateDocument(valid()))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("missing owner", func(t *testing.T) {
		d := valid()
		d.OwnerId = 0
		assert.ErrorIs(t, ValidateDocument(d), ErrMissingOwner)
	})

	t.Run("missing filename", func(t *testing.T) {
		d := valid()
		d.Filename = ""
		assert.ErrorIs(t, ValidateDocument(d), ErrEmptyFilename)
	})

	t.Run("invalid file type", func(t *testing.T) {
		d := valid()
		d.FileType = FileType(42)
		assert.ErrorIs(t, ValidateDocument(d), ErrInvalidFileType)
	})
}

func TestValidateFileType(t *testing.T) {
	assert.NoError(t, ValidateFileType(FileTypeExcel))
	assert.NoError(t, ValidateFileType(FileTypeJSON))
	assert.ErrorIs(t, ValidateFileType(FileType(0)), ErrInvalidFileType)
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ana@example.com", true},
		{"a@b", true},
		{"", false},
		{"no-at-sign", false},
		{"@leading", false},
		{"trailing@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}
