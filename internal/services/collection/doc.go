// Package collection is the use-case layer over a domain.CollectionStore.
//
// It owns the behaviour that is independent of where collections live:
// tolerant deletes, get-or-create, and logging of destructive operations.
package collection
