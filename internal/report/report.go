// Package report composes printable documents from safety request records.
//
// The Composer turns a record plus a user-chosen set of print sections into
// an ordered sequence of page fragments; Renderer implementations (HTML,
// PDF) turn those fragments into printable output. The composer itself
// never touches a windowing or printing API, so it is fully testable
// without one.
package report

import (
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Document Model
// =============================================================================

// DocumentFormat identifies a renderer output format.
type DocumentFormat string

const (
	FormatHTML DocumentFormat = "html"
	FormatPDF  DocumentFormat = "pdf"
)

// Field is one (label, value) pair of a page fragment. Values are already
// formatted for display; empty source values arrive as "N/A".
type Field struct {
	Label string
	Value string
}

// PageFragment is one printable page: a section title plus a flat sequence
// of labelled values. Each fragment starts on a new page when rendered.
type PageFragment struct {
	SectionID string
	Title     string
	Fields    []Field
}

// Document is the composed, ordered sequence of page fragments for one
// record.
type Document struct {
	Title       string
	Subtitle    string
	RequestID   string
	GeneratedAt time.Time
	Pages       []PageFragment
}

// =============================================================================
// Renderer Interface
// =============================================================================

// Renderer turns a composed document into printable output. Implementations
// handle the specifics of each format; swapping the renderer (print dialog,
// PDF export, test capture) never changes composition.
type Renderer interface {
	// Render writes the document to w and returns the number of bytes
	// written.
	Render(ctx context.Context, doc *Document, w io.Writer) (int64, error)

	// Format returns the output format of this renderer.
	Format() DocumentFormat
}

// =============================================================================
// Formatting Helpers
// =============================================================================

// emptyValue is rendered for absent or empty field values.
const emptyValue = "N/A"

// FormatDate formats a stored date value (2006-01-02 or RFC 3339) for
// display. Unparseable values render verbatim.
func FormatDate(value string) string {
	if value == "" {
		return emptyValue
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return value
}

// FormatDateTime formats a timestamp for the document footer.
func FormatDateTime(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}

var titleCaser = cases.Title(language.English)

// TitleCase converts an all-caps section title to title case for selector
// labels ("STATIC TEST" -> "Static Test").
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}
