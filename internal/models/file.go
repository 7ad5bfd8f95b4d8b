// ABOUTME: LocalFile model for an image selected on this machine.
// ABOUTME: Blob stores derive the MIME type from the storage key's extension.

package models

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

const defaultMimeType = "application/octet-stream"

type LocalFile struct {
	Name string
	Data []byte
}

func NewLocalFile(name string, data []byte) *LocalFile {
	return &LocalFile{
		Name: filepath.Base(name),
		Data: data,
	}
}

// ReadLocalFile loads a file from disk for upload.
func ReadLocalFile(path string) (*LocalFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return NewLocalFile(path, data), nil
}

// MimeTypeFor guesses a MIME type from the file extension.
func MimeTypeFor(name string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		return defaultMimeType
	}
	return mimeType
}

// DataURL encodes data as an RFC 2397 data URI, for backends that keep
// blobs next to the records instead of behind a URL of their own.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
