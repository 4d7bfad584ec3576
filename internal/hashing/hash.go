package hashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Prefix identifies the hash algorithm in rendered hashes.
const Prefix = "sha256:"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a leading UTF-8 BOM and converts CRLF line endings to LF.
// Interior whitespace is left untouched.
func Normalize(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
}

// Hash returns the normalized content hash of data, rendered as
// "sha256:<hex>". Two buffers that differ only in BOM presence or
// line-ending style hash identically.
func Hash(data []byte) string {
	sum := sha256.Sum256(Normalize(data))
	return Prefix + hex.EncodeToString(sum[:])
}

// HashString is Hash for string content.
func HashString(content string) string {
	return Hash([]byte(content))
}

// HashFile reads and hashes the file at path. A missing or unreadable file
// is an error, never a sentinel hash; callers that treat absence as data
// should Stat first or check os.IsNotExist on the wrapped error.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return Hash(data), nil
}
