package documents

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

// ObjectStore is the binary store generated PDFs are written to.
type ObjectStore interface {
	Upload(path, contentType string, data []byte) error
	Delete(path string) error
}

// RefStore records where a job's document lives.
type RefStore interface {
	SetDocumentRef(ctx context.Context, jobID uuid.UUID, kind models.DocumentKind, path string, generatedAt time.Time) error
}

// Stored is the result of a persist. Data is the exact rendered output, so a
// caller can hand the same bytes back as a download.
type Stored struct {
	Kind        models.DocumentKind `json:"kind"`
	Path        string              `json:"path"`
	GeneratedAt time.Time           `json:"generated_at"`
	Data        []byte              `json:"-"`
}

type Persister struct {
	generator *Generator
	objects   ObjectStore
	refs      RefStore
}

func NewPersister(generator *Generator, objects ObjectStore, refs RefStore) *Persister {
	return &Persister{
		generator: generator,
		objects:   objects,
		refs:      refs,
	}
}

func (p *Persister) Generator() *Generator {
	return p.generator
}

// Persist renders doc, uploads it and records the reference on the job.
// An upload whose reference cannot be recorded is removed again.
func (p *Persister) Persist(ctx context.Context, doc Document) (*Stored, error) {
	data, err := p.generator.Render(doc)
	if err != nil {
		return nil, err
	}
	path := supabase.DocumentPath(doc.JobID(), string(doc.Kind()), doc.GeneratedAt())
	if err := p.objects.Upload(path, supabase.ContentTypePDF, data); err != nil {
		return nil, fmt.Errorf("store %s for job %s: %w", doc.Kind(), doc.JobID(), err)
	}
	if err := p.refs.SetDocumentRef(ctx, doc.JobID(), doc.Kind(), path, doc.GeneratedAt()); err != nil {
		if delErr := p.objects.Delete(path); delErr != nil {
			log.Printf("Warning: failed to remove unreferenced document %s: %v", path, delErr)
		}
		return nil, fmt.Errorf("record %s for job %s: %w", doc.Kind(), doc.JobID(), err)
	}
	return &Stored{
		Kind:        doc.Kind(),
		Path:        path,
		GeneratedAt: doc.GeneratedAt(),
		Data:        data,
	}, nil
}
