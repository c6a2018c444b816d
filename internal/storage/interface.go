package storage

import "errors"

// ErrNotFound is returned by Retrieve and Delete when the named blob does not exist
var ErrNotFound = errors.New("blob not found")

// StorageInterface defines the contract for storage operations.
// It backs both the report archive and the blob-based batch source.
type StorageInterface interface {
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	// List returns the names under prefix in lexical order
	List(prefix string) ([]string, error)
	Delete(filename string) error
}
