package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/reclaimip/backend/internal/models"
)

// Header/heading accent color, matching the frontend theme.
const (
	accentR = 102
	accentG = 126
	accentB = 234
)

// Renderer turns a finalized result set into a paginated PDF document.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the complete report. Any rendering failure returns an
// error and no bytes; partial documents are never returned.
func (r *Renderer) Render(req models.ExportRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Patent Intelligence Report", true)
	pdf.SetMargins(19, 19, 19)
	pdf.SetAutoPageBreak(true, 19)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.CellFormat(0, 12, "Patent Intelligence Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	r.heading(pdf, "Project Description")
	r.body(pdf, tr(req.ProjectDescription))

	r.heading(pdf, "Key Technical Concepts")
	r.body(pdf, tr(strings.Join(req.KeyConcepts, ", ")))

	r.heading(pdf, "Status Filter")
	r.body(pdf, tr(statusLabel(req.Filter)))

	r.heading(pdf, "Estimated R&D Savings")
	r.body(pdf, tr(req.EstimatedSavings))
	pdf.Ln(4)

	r.heading(pdf, fmt.Sprintf("Relevant Patents (%d found)", len(req.Patents)))

	if len(req.Patents) == 0 {
		r.body(pdf, "No patents found for this analysis.")
	}

	for i, patent := range req.Patents {
		r.renderPatent(pdf, tr, i+1, patent)

		// New page after every second patent, but not after the last one
		if (i+1)%2 == 0 && i+1 < len(req.Patents) {
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderPatent(pdf *gofpdf.Fpdf, tr func(string) string, index int, patent models.Patent) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s - %s", index, patent.PatentNumber, patent.Status)), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr("Title: "+patent.Title), "", "L", false)
	pdf.MultiCell(0, 6, tr("Abstract: "+patent.Abstract), "", "L", false)

	relevance := int(math.Round(patent.RelevanceScore * 100))
	pdf.MultiCell(0, 6, fmt.Sprintf("Relevance Score: %d%%", relevance), "", "L", false)

	pdf.SetTextColor(0, 0, 255)
	pdf.SetFont("Helvetica", "U", 11)
	pdf.CellFormat(0, 6, tr(patent.URL), "", 1, "L", false, 0, patent.URL)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

func (r *Renderer) heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *Renderer) body(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	if text == "" {
		text = "-"
	}
	pdf.MultiCell(0, 6, text, "", "L", false)
	pdf.Ln(3)
}

func statusLabel(filter string) string {
	switch strings.ToLower(filter) {
	case "expired":
		return "Expired patents only"
	case "active":
		return "Active patents only"
	default:
		return "All patents"
	}
}
