// Package store provides the persistent local collection database.
//
// A store is a directory holding catalog.json, the index of collections, and
// one subdirectory per collection id containing its current record segment
// (zstd-compressed JSON). The catalog records each segment's BLAKE2b checksum
// and reads fail with domain.ErrCorruptSegment on mismatch. Every file is
// written via a temp file then rename, and a Store serialises its operations
// with an internal lock.
package store
