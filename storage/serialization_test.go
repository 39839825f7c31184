package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	original := core.ID(12345)

	data := MarshalID(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalID(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestUnmarshalID_Truncated(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalUser(t *testing.T) {
	original := &core.User{
		Id:           7,
		Email:        "budi@example.com",
		Name:         "Budi",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC),
		UpdatedAt:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	data := MarshalUser(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalUser(data)
	require.NoError(t, err)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Email, decoded.Email)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.PasswordHash, decoded.PasswordHash)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	original := &core.Document{
		Id:          3,
		OwnerId:     7,
		Filename:    "inventory.xlsx",
		FileType:    core.FileTypeExcel,
		Fingerprint: core.IDFromContent("inventory bytes"),
		Chunks: []core.Chunk{
			{Text: "name: Widget | price: 9.99", Vector: []float32{0.1, -0.2, 0.3}},
			{Text: "name: Gadget | price: 4.50", Vector: []float32{-0.4, 0.5, 0.6}},
		},
		Processed:  true,
		UploadedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
	}

	data := MarshalDocument(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.OwnerId, decoded.OwnerId)
	assert.Equal(t, original.Filename, decoded.Filename)
	assert.Equal(t, original.FileType, decoded.FileType)
	assert.Equal(t, original.Fingerprint, decoded.Fingerprint)
	assert.Equal(t, original.Chunks, decoded.Chunks)
	assert.Equal(t, original.Processed, decoded.Processed)
	assert.True(t, original.UploadedAt.Equal(decoded.UploadedAt))
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalDocument_NoChunks(t *testing.T) {
	original := &core.Document{
		Id:       1,
		OwnerId:  2,
		Filename: "data.json",
		FileType: core.FileTypeJSON,
	}

	decoded, err := UnmarshalDocument(MarshalDocument(original))
	require.NoError(t, err)
	assert.Empty(t, decoded.Chunks)
	assert.False(t, decoded.Processed)
}

func TestUnmarshalDocument_Corrupted(t *testing.T) {
	doc := &core.Document{
		Id:       1,
		OwnerId:  2,
		Filename: "data.json",
		FileType: core.FileTypeJSON,
		Chunks:   []core.Chunk{{Text: "a: 1", Vector: []float32{1, 2, 3}}},
	}
	data := MarshalDocument(doc)

	_, err := UnmarshalDocument(data[:len(data)/2])
	assert.Error(t, err)
}
