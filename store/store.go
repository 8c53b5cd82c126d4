// Package store abstracts where the files of a dictionary directory live.
// Writers render whole files before calling Put, so every implementation
// only needs whole-object reads and writes.
package store

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a file does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Store is a flat namespace of dictionary files.
type Store interface {
	// Open opens a file for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Put replaces a file with data atomically.
	Put(ctx context.Context, name string, data []byte) error
	// List returns every file name in sorted order.
	List(ctx context.Context) ([]string, error)
}

// Copy transfers every file of src into dst.
func Copy(ctx context.Context, dst, src Store) error {
	names, err := src.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		rc, err := src.Open(ctx, name)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
		if err := dst.Put(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}
