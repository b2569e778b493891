// Package store persists the whole dataset as one document. The working
// set is small enough that load/modify/save of the full aggregate beats
// any per-record scheme in simplicity; callers above this package are
// responsible for serializing concurrent mutations.
package store

import "github.com/mkoster/tally/internal/models"

type Store interface {
	// Load returns the persisted document. A store that has never been
	// written to, or whose contents cannot be parsed, yields a fresh
	// empty document rather than an error.
	Load() (models.Document, error)
	// Save replaces the persisted document in full. A reader never
	// observes a half-written document.
	Save(models.Document) error
}
