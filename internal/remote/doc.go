// Package remote implements domain.CollectionStore against a Chroma server's
// REST API (v1).
//
// Collections are addressed by name for create, get and delete, and by id for
// record operations, so record calls resolve the name first.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *APIError values carrying the
// method, full URL, status and response body. Missing collections unwrap to
// domain.ErrCollectionNotFound.
package remote
