package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCollectionNotFound = errors.New("collection does not exist")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrInvalidName        = errors.New("invalid collection name")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
	ErrCorruptSegment     = errors.New("segment checksum mismatch")
	ErrInvalidSpace       = errors.New("unsupported distance space")
)

// NameError reports why a collection name was rejected.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid collection name %q: %s", e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrInvalidName }

// SpaceError reports an unknown hnsw:space value.
type SpaceError struct {
	Value string
}

func (e *SpaceError) Error() string {
	return fmt.Sprintf("unsupported distance space %q (want l2, cosine or ip)", e.Value)
}

func (e *SpaceError) Unwrap() error { return ErrInvalidSpace }

// DimensionError reports an embedding whose length differs from the collection's.
type DimensionError struct {
	ID   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding %q has dimension %d, collection expects %d", e.ID, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }
