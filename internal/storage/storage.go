// Package storage keeps attachment blobs under opaque, server-generated
// names.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidName = errors.New("invalid stored file name")
)

// Object describes a stored blob.
type Object struct {
	Name    string
	ModTime time.Time
}

// Storage is a flat namespace of blobs. Remove of a missing name succeeds.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]Object, error)
	Provider() string
}

// NewName returns a random name with 128 bits of entropy followed by ext.
func NewName(ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + ext, nil
}

// ValidateName rejects anything that is not a single flat path element.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	return nil
}
