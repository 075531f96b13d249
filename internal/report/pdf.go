package report

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// =============================================================================
// PDF Renderer
// =============================================================================

// PDFRenderer renders composed documents directly to PDF, one landscape A4
// page per fragment.
type PDFRenderer struct {
	pageWidth  float64
	pageHeight float64
	margin     float64

	contentWidth float64
}

// NewPDFRenderer creates a PDF renderer with default page settings.
func NewPDFRenderer() *PDFRenderer {
	margin := 12.0
	pageWidth := 297.0 // A4 landscape width in mm
	return &PDFRenderer{
		pageWidth:    pageWidth,
		pageHeight:   210.0,
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
	}
}

// Format returns FormatPDF.
func (r *PDFRenderer) Format() DocumentFormat {
	return FormatPDF
}

// Colors matching the HTML print style.
var (
	pdfHeadline = [3]int{6, 78, 59}     // dark green
	pdfBar      = [3]int{209, 247, 214} // light green fill
	pdfAccent   = [3]int{16, 185, 129}  // section bar accent
	pdfMuted    = [3]int{107, 114, 128} // footer gray
	pdfText     = [3]int{51, 51, 51}
)

// Render writes the document as PDF to w.
func (r *PDFRenderer) Render(ctx context.Context, doc *Document, w io.Writer) (int64, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(r.margin, r.margin, r.margin)
	pdf.SetAutoPageBreak(true, r.margin)

	for i, page := range doc.Pages {
		pdf.AddPage()
		if i == 0 {
			r.drawHeader(pdf, doc)
		}
		r.drawSectionTitle(pdf, page.Title)
		r.drawFields(pdf, page.Fields)
	}

	r.drawFooter(pdf, doc)

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("build pdf: %w", err)
	}

	counter := &countingWriter{w: w}
	if err := pdf.Output(counter); err != nil {
		return counter.n, fmt.Errorf("write pdf: %w", err)
	}
	return counter.n, nil
}

func (r *PDFRenderer) drawHeader(pdf *fpdf.Fpdf, doc *Document) {
	pdf.SetTextColor(pdfHeadline[0], pdfHeadline[1], pdfHeadline[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(r.contentWidth, 8, doc.Title, "", 1, "C", false, 0, "")

	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(r.contentWidth, 5, doc.Subtitle, "", 1, "C", false, 0, "")

	// Rule under the header.
	pdf.SetDrawColor(pdfHeadline[0], pdfHeadline[1], pdfHeadline[2])
	pdf.SetLineWidth(0.6)
	y := pdf.GetY() + 1
	pdf.Line(r.margin, y, r.pageWidth-r.margin, y)
	pdf.SetY(y + 4)
}

func (r *PDFRenderer) drawSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFillColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
	pdf.Rect(r.margin, pdf.GetY(), 1.5, 8, "F")

	pdf.SetFillColor(pdfBar[0], pdfBar[1], pdfBar[2])
	pdf.SetTextColor(pdfHeadline[0], pdfHeadline[1], pdfHeadline[2])
	pdf.SetFont("Arial", "B", 10)
	pdf.SetX(r.margin + 1.5)
	pdf.CellFormat(r.contentWidth-1.5, 8, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func (r *PDFRenderer) drawFields(pdf *fpdf.Fpdf, fields []Field) {
	colWidth := (r.contentWidth - 4) / 2
	labelHeight := 4.0
	valueHeight := 6.0
	rowGap := 3.0

	for i := 0; i < len(fields); i += 2 {
		rowTop := pdf.GetY()
		bottom := rowTop
		for col := 0; col < 2 && i+col < len(fields); col++ {
			f := fields[i+col]
			x := r.margin + float64(col)*(colWidth+4)

			pdf.SetTextColor(pdfHeadline[0], pdfHeadline[1], pdfHeadline[2])
			pdf.SetFont("Arial", "B", 7)
			pdf.SetXY(x, rowTop)
			pdf.CellFormat(colWidth, labelHeight, f.Label, "", 0, "L", false, 0, "")

			pdf.SetTextColor(pdfText[0], pdfText[1], pdfText[2])
			pdf.SetFont("Arial", "", 9)
			pdf.SetXY(x, rowTop+labelHeight)
			pdf.MultiCell(colWidth, valueHeight, f.Value, "", "L", false)
			if y := pdf.GetY(); y > bottom {
				bottom = y
			}
		}
		pdf.SetY(bottom + rowGap)
	}
}

func (r *PDFRenderer) drawFooter(pdf *fpdf.Fpdf, doc *Document) {
	pdf.SetY(-r.margin - 6)
	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(r.contentWidth, 4, "Generated: "+FormatDateTime(doc.GeneratedAt), "", 0, "C", false, 0, "")
}

// countingWriter tracks how many bytes were written to the sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
