package documents

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	lineHeight  = 5.5
	labelWidth  = 62.0
	fontFamily  = "Helvetica"
	dateLayout  = "January 2, 2006"
	stampLayout = "January 2, 2006 15:04 MST"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// page wraps the fpdf document with the handful of blocks every form uses.
type page struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	letterhead Letterhead
	images     int
}

func newPage(pdf *fpdf.Fpdf, letterhead Letterhead) *page {
	return &page{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		letterhead: letterhead,
	}
}

func (p *page) contentWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	left, _, right, _ := p.pdf.GetMargins()
	return w - left - right
}

func (p *page) header() {
	p.pdf.SetFont(fontFamily, "B", 14)
	p.pdf.CellFormat(0, 7, p.tr(p.letterhead.Name), "", 1, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 9)
	var contact []string
	if p.letterhead.Address != "" {
		contact = append(contact, p.letterhead.Address)
	}
	if p.letterhead.Phone != "" {
		contact = append(contact, p.letterhead.Phone)
	}
	if len(contact) > 0 {
		p.pdf.CellFormat(0, 4.5, p.tr(strings.Join(contact, "  |  ")), "", 1, "L", false, 0, "")
	}
	left, _, _, _ := p.pdf.GetMargins()
	y := p.pdf.GetY() + 1.5
	p.pdf.SetLineWidth(0.4)
	p.pdf.Line(left, y, left+p.contentWidth(), y)
	p.pdf.Ln(5)
}

func (p *page) footer() {
	p.pdf.SetY(-14)
	p.pdf.SetFont(fontFamily, "I", 8)
	p.pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", p.pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (p *page) title(s string) {
	p.pdf.SetFont(fontFamily, "B", 13)
	p.pdf.CellFormat(0, 8, p.tr(s), "", 1, "C", false, 0, "")
	p.pdf.Ln(2)
}

func (p *page) section(s string) {
	p.pdf.Ln(2)
	p.pdf.SetFont(fontFamily, "B", 11)
	p.pdf.SetFillColor(230, 230, 230)
	p.pdf.CellFormat(0, 7, p.tr(s), "", 1, "L", true, 0, "")
	p.pdf.Ln(1)
}

// field prints a label/value row, wrapping long values.
func (p *page) field(label, value string) {
	if value == "" {
		value = "-"
	}
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(labelWidth, lineHeight, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.MultiCell(p.contentWidth()-labelWidth, lineHeight, p.tr(value), "", "L", false)
}

func (p *page) question(q string, answer bool) {
	p.field(q, yesNo(answer))
}

func (p *page) paragraph(text string) {
	p.pdf.SetFont(fontFamily, "", 9.5)
	p.pdf.MultiCell(0, 5, p.tr(text), "", "J", false)
	p.pdf.Ln(1)
}

func (p *page) bullet(text string) {
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.CellFormat(6, lineHeight, "-", "", 0, "C", false, 0, "")
	p.pdf.MultiCell(p.contentWidth()-6, lineHeight, p.tr(text), "", "L", false)
}

// table draws a simple bordered grid. widths are fractions of the content
// width.
func (p *page) table(headers []string, widths []float64, rows [][]string) {
	total := p.contentWidth()
	p.pdf.SetFont(fontFamily, "B", 9)
	p.pdf.SetFillColor(242, 242, 242)
	for i, h := range headers {
		p.pdf.CellFormat(widths[i]*total, 6.5, p.tr(h), "1", 0, "L", true, 0, "")
	}
	p.pdf.Ln(-1)
	p.pdf.SetFont(fontFamily, "", 9)
	for _, row := range rows {
		for i, cell := range row {
			p.pdf.CellFormat(widths[i]*total, 6, p.tr(cell), "1", 0, "L", false, 0, "")
		}
		p.pdf.Ln(-1)
	}
}

// signature prints the signature block. A PNG data URL is drawn as an image;
// anything else is printed as typed text.
func (p *page) signature(caption, signerName, signature string, signedAt time.Time) {
	p.pdf.Ln(4)
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(0, lineHeight, p.tr(caption), "", 1, "L", false, 0, "")

	left, _, _, _ := p.pdf.GetMargins()
	if img, ok := decodePNG(signature); ok {
		p.images++
		name := fmt.Sprintf("signature-%d", p.images)
		p.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
		p.pdf.ImageOptions(name, left, p.pdf.GetY(), 60, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		p.pdf.Ln(8)
		if typed := strings.TrimSpace(signature); typed != "" && !strings.HasPrefix(typed, "data:") {
			p.pdf.SetFont(fontFamily, "I", 14)
			p.pdf.CellFormat(0, 8, p.tr(typed), "", 1, "L", false, 0, "")
		}
	}
	y := p.pdf.GetY() + 1
	p.pdf.SetLineWidth(0.3)
	p.pdf.Line(left, y, left+90, y)
	p.pdf.Ln(3)
	p.field("Name", signerName)
	if !signedAt.IsZero() {
		p.field("Date", signedAt.UTC().Format(stampLayout))
	}
}

func decodePNG(signature string) ([]byte, bool) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(signature, prefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(signature, prefix))
	if err != nil || !bytes.HasPrefix(raw, pngMagic) {
		return nil, false
	}
	return raw, true
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
