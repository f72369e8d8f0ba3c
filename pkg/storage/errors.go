package storage

import "errors"

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyPath indicates no local file path was provided for upload.
	ErrEmptyPath = errors.New("upload path must not be empty")
	// ErrInvalidKey indicates an empty key or one containing a path traversal segment.
	ErrInvalidKey = errors.New("storage key is invalid")
)
