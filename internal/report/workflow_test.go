package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/firelane/safecover/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowHappyPath(t *testing.T) {
	w := NewWorkflow(testComposer(t))
	assert.Equal(t, StateIdle, w.State())

	options := w.Offer(integrationRecord())
	assert.Equal(t, StateSectionsOffered, w.State())
	assert.NotEmpty(t, options)

	require.NoError(t, w.Toggle("integration"))
	assert.Equal(t, 1, w.SelectedCount())

	doc, err := w.Compose()
	require.NoError(t, err)
	assert.Contains(t, sectionIDs(doc), "integration")

	// Composition handed off: back to idle, selection gone.
	assert.Equal(t, StateIdle, w.State())
	assert.Equal(t, 0, w.SelectedCount())
}

func TestWorkflowRequiresSelection(t *testing.T) {
	w := NewWorkflow(testComposer(t))
	w.Offer(integrationRecord())

	_, err := w.Compose()
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Contains(t, domain.ErrorMessage(err), "at least one")

	// Failed compose leaves the user on the selection screen.
	assert.Equal(t, StateSectionsOffered, w.State())
}

func TestWorkflowStaysIdleWithoutSections(t *testing.T) {
	w := NewWorkflow(testComposer(t))

	// A record with no populated indicator fields offers nothing.
	w.Offer(domain.NewRecord("12345", "DRDL", "Engineering"))
	assert.Equal(t, StateIdle, w.State())

	err := w.Toggle("integration")
	require.Error(t, err)
}

func TestWorkflowSelectionDoesNotPersistAcrossRecords(t *testing.T) {
	w := NewWorkflow(testComposer(t))

	w.Offer(integrationRecord())
	require.NoError(t, w.Toggle("integration"))

	w.Offer(integrationRecord())
	assert.Equal(t, 0, w.SelectedCount())
}

func TestHTMLRendererOutput(t *testing.T) {
	c := testComposer(t)
	rec := integrationRecord()
	doc := c.Compose(rec, map[string]bool{"integration": true})

	var buf bytes.Buffer
	n, err := NewHTMLRenderer().Render(context.Background(), doc, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	html := buf.String()
	assert.Contains(t, html, "SAFETY &amp; FIRE COVERAGE REQUEST FORM")
	assert.Contains(t, html, "REQUEST INFORMATION")
	assert.Contains(t, html, "INTEGRATION TEST")
	assert.Contains(t, html, "APPROVAL STATUS")
	assert.Contains(t, html, "Bay 3")
	// Order: request info before the coverage section, approval last.
	assert.Less(t, strings.Index(html, "REQUEST INFORMATION"), strings.Index(html, "INTEGRATION TEST"))
	assert.Less(t, strings.Index(html, "INTEGRATION TEST"), strings.Index(html, "APPROVAL STATUS"))
}

func TestPDFRendererOutput(t *testing.T) {
	c := testComposer(t)
	doc := c.Compose(integrationRecord(), map[string]bool{"integration": true})

	var buf bytes.Buffer
	n, err := NewPDFRenderer().Render(context.Background(), doc, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "N/A"},
		{"date only", "2026-09-10", "September 10, 2026"},
		{"rfc3339", "2026-09-10T14:00:00Z", "September 10, 2026"},
		{"unparseable renders verbatim", "next tuesday", "next tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.value))
		})
	}
}
