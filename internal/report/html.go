package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
)

// =============================================================================
// HTML Renderer
// =============================================================================

// HTMLRenderer renders composed documents as a self-contained printable HTML
// page (A4 landscape, one page per fragment). The output is what the browser
// print dialog or an HTML-to-PDF converter consumes.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates an HTML renderer. Panics only on a broken
// template, which is a programming error caught by any test that renders.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("document").Funcs(template.FuncMap{
			"datetime": FormatDateTime,
		}).Parse(documentTemplate)),
	}
}

// Format returns FormatHTML.
func (r *HTMLRenderer) Format() DocumentFormat {
	return FormatHTML
}

// Render writes the document as HTML to w.
func (r *HTMLRenderer) Render(ctx context.Context, doc *Document, w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return 0, fmt.Errorf("render document: %w", err)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write output: %w", err)
	}
	return int64(n), nil
}

// documentTemplate lays the fragments out in the established print style:
// one landscape page per fragment, green section bars, two-column field
// grid.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}{{if .RequestID}} - {{.RequestID}}{{end}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: Arial, sans-serif; color: #333; line-height: 1.3; }
  @page { size: A4 landscape; margin: 12mm; }
  .page { page-break-after: always; padding: 20px; min-height: 100vh; }
  .page:last-child { page-break-after: avoid; }
  .header { text-align: center; border-bottom: 2px solid #064E3B; padding-bottom: 10px; margin-bottom: 12px; }
  .header h1 { margin: 0 0 3px 0; color: #064E3B; font-size: 16px; letter-spacing: 0.6px; }
  .header p { margin: 2px 0; font-size: 11px; color: #6B7280; }
  .section-title { background-color: #D1F7D6; color: #064E3B; padding: 5px 8px; margin-bottom: 6px; font-weight: bold; font-size: 11px; border-left: 4px solid #10B981; }
  .field-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 8px; margin-bottom: 8px; }
  .field { border: 1px solid #D1F7D6; padding: 5px 6px; background-color: #F0FDF4; font-size: 10px; }
  .field-label { font-weight: bold; color: #064E3B; margin-bottom: 2px; font-size: 9px; }
  .field-value { color: #333; word-break: break-word; font-size: 10px; }
  .footer { text-align: center; font-size: 9px; color: #6B7280; margin-top: 20px; }
  @media print { body { margin: 0; } .page { page-break-after: always; page-break-inside: avoid; } }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Title}}</h1>
  <p>{{.Subtitle}}</p>
</div>
{{range .Pages}}<div class="page">
  <div class="section-title">{{.Title}}</div>
  <div class="field-grid">
{{range .Fields}}    <div class="field"><div class="field-label">{{.Label}}</div><div class="field-value">{{.Value}}</div></div>
{{end}}  </div>
</div>
{{end}}<div class="footer">Generated: {{datetime .GeneratedAt}}</div>
</body>
</html>
`
