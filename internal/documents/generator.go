// Package documents renders job paperwork to PDF. Output depends only on the
// document payload, so a download and a persisted copy of the same payload
// are byte-identical.
package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

// Document is a typed payload the generator knows how to lay out.
type Document interface {
	Kind() models.DocumentKind
	JobID() uuid.UUID
	// GeneratedAt is taken from the payload, never from the clock.
	GeneratedAt() time.Time
	Title() string
	write(p *page)
}

// Letterhead is printed at the top of every page.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
}

type Generator struct {
	letterhead Letterhead
}

func NewGenerator(letterhead Letterhead) *Generator {
	return &Generator{letterhead: letterhead}
}

func (g *Generator) Render(doc Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to render")
	}
	pdf := fpdf.New("P", "mm", "Letter", "")
	at := doc.GeneratedAt().UTC()
	pdf.SetCreationDate(at)
	pdf.SetModificationDate(at)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)
	pdf.SetProducer("fieldops", false)
	pdf.SetTitle(doc.Title(), true)
	pdf.SetAuthor(g.letterhead.Name, true)
	pdf.SetMargins(18, 16, 18)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")

	p := newPage(pdf, g.letterhead)
	pdf.SetHeaderFunc(p.header)
	pdf.SetFooterFunc(p.footer)
	pdf.AddPage()

	p.title(doc.Title())
	doc.write(p)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render %s for job %s: %w", doc.Kind(), doc.JobID(), err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write %s for job %s: %w", doc.Kind(), doc.JobID(), err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name offered to clients.
func Filename(doc Document) string {
	return fmt.Sprintf("%s_%s.pdf", doc.Kind(), doc.JobID())
}
