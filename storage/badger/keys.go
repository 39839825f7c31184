package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/docquery/core"
)

// Key prefixes for different data types
const (
	userRecordPrefix  = "usrrec"
	userEmailPrefix   = "usremail"
	userIDSeq         = "usrrecseq"
	documentPrefix    = "docrec"
	documentFprPrefix = "docfpr"
	documentIDSeq     = "docrecseq"
)

// makeUserKey generates a key for a user by ID.
func makeUserKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", userRecordPrefix, id))
}

// makeUserEmailKey generates a key for the email index.
// Format: prefix:email
func makeUserEmailKey(email string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userEmailPrefix, email))
}

// makeDocumentKey generates a composite key for a document.
// Format: prefix:ownerID:documentID
func makeDocumentKey(owner, id core.ID) []byte {
	prefix := documentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for owner + 8 bytes for document ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDocumentKey generates a partial key for per-owner scans.
// Format: prefix:ownerID
func makePartialDocumentKey(owner core.ID) []byte {
	prefix := documentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for owner
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	return buf
}

// makeFingerprintKey generates a composite key for the content fingerprint index.
// Format: prefix:ownerID:fingerprint
func makeFingerprintKey(owner, fingerprint core.ID) []byte {
	prefix := documentFprPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for owner + 8 bytes for fingerprint
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(fingerprint))
	return buf
}
