// Package domain defines the collection data model, its errors and the
// store/service contracts shared across the app.
package domain
