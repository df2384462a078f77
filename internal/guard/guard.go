// Package guard blocks a second submission of documents limited to one per
// job. The existence check is advisory; the store's uniqueness constraint is
// the enforcement backstop and its duplicate error is reported the same way.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

var ErrAlreadySubmitted = errors.New("document already submitted")

type Store interface {
	SingletonExists(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (bool, error)
}

type Guard struct {
	store Store
}

func New(store Store) *Guard {
	return &Guard{store: store}
}

// Exists reports whether a record of kind has been submitted for the job.
// Kinds that are not per-job singletons never exist in this sense.
func (g *Guard) Exists(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind) (bool, error) {
	if !kind.Singleton() {
		return false, nil
	}
	exists, err := g.store.SingletonExists(ctx, jobID, kind)
	if err != nil {
		return false, fmt.Errorf("check %s for job %s: %w", kind, jobID, err)
	}
	return exists, nil
}

// Submit runs write unless a record of kind already exists. A duplicate
// rejected by the store during write is reported as ErrAlreadySubmitted.
func (g *Guard) Submit(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind, write func(context.Context) error) error {
	exists, err := g.Exists(ctx, jobID, kind)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s for job %s: %w", kind, jobID, ErrAlreadySubmitted)
	}
	if err := write(ctx); err != nil {
		if kind.Singleton() && errors.Is(err, supabase.ErrDuplicate) {
			return fmt.Errorf("%s for job %s: %w", kind, jobID, ErrAlreadySubmitted)
		}
		return err
	}
	return nil
}
