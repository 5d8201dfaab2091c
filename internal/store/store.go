// Package store provides keyed persistence for applicant records. All
// writes replace whole records, so implementations only need to keep
// individual record writes atomic.
package store

import (
	"errors"

	"github.com/mountainops/lifthire/internal/hiring"
)

// ErrNotFound marks an unknown applicant id. Single-item operations
// surface it; bulk operations skip it.
var ErrNotFound = errors.New("applicant not found")

// ApplicantStore is the keyed applicant collaborator of the pipeline
// engine. List returns applicants in insertion order.
type ApplicantStore interface {
	Get(id string) (*hiring.Applicant, error)
	List() (*hiring.Applicants, error)
	Put(a *hiring.Applicant) error
	// Reset drops everything and loads the given roster.
	Reset(roster []*hiring.Applicant) error
	Close() error
}
