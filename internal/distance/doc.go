// Package distance implements the distance functions a collection can be
// created with. Smaller is always closer.
package distance
