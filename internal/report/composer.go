package report

import (
	"time"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/schema"
)

// Well-known section ids for the two sections included in every document.
const (
	SectionRequestInfo = "requestInfo"
	SectionApproval    = "approval"
)

const (
	documentTitle    = "SAFETY & FIRE COVERAGE REQUEST FORM"
	documentSubtitle = "Defence Research and Development Laboratory"
)

// =============================================================================
// Composer
// =============================================================================

// Composer builds printable documents from records. It consults the schema
// registry for print-section definitions and field labels, pulls values from
// the record, and never mutates it.
type Composer struct {
	registry *schema.Registry
	now      func() time.Time
}

// NewComposer creates a composer over the given registry.
func NewComposer(registry *schema.Registry) *Composer {
	return &Composer{registry: registry, now: time.Now}
}

// SectionOption describes one selectable print section and whether the
// record has data for it.
type SectionOption struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// Sections lists every coverage print section in schema order, marking the
// ones whose indicator field is populated on the record. The always-present
// request-information and approval sections are not listed; they cannot be
// deselected.
func (c *Composer) Sections(rec *domain.SafetyRequestRecord) []SectionOption {
	var out []SectionOption
	for _, opt := range c.registry.CoverageTypes() {
		s, err := c.registry.Schema(opt.ID)
		if err != nil {
			continue
		}
		for _, sec := range s.Sections {
			out = append(out, SectionOption{
				ID:        sec.ID,
				Label:     TitleCase(sec.Title),
				Available: sec.Indicator == "" || !rec.FieldEmpty(sec.Indicator),
			})
		}
	}
	return out
}

// Compose builds the ordered document for the record and the user's section
// selection. Ordering is fixed: request information first, coverage sections
// in schema-declared order, approval last. A coverage section is included
// iff it was selected and its indicator field is non-empty; the two
// always-present sections ignore the selection.
func (c *Composer) Compose(rec *domain.SafetyRequestRecord, selected map[string]bool) *Document {
	doc := &Document{
		Title:       documentTitle,
		Subtitle:    documentSubtitle,
		RequestID:   rec.UniqueID,
		GeneratedAt: c.now(),
	}

	doc.Pages = append(doc.Pages, c.requestInfoPage(rec))

	for _, opt := range c.registry.CoverageTypes() {
		s, err := c.registry.Schema(opt.ID)
		if err != nil {
			continue
		}
		for _, sec := range s.Sections {
			if !selected[sec.ID] {
				continue
			}
			if sec.Indicator != "" && rec.FieldEmpty(sec.Indicator) {
				continue
			}
			doc.Pages = append(doc.Pages, c.sectionPage(rec, s, sec))
		}
	}

	doc.Pages = append(doc.Pages, c.approvalPage(rec))
	return doc
}

// sectionPage renders one coverage print section as labelled values.
func (c *Composer) sectionPage(rec *domain.SafetyRequestRecord, s *schema.CoverageSchema, sec schema.PrintSection) PageFragment {
	page := PageFragment{SectionID: sec.ID, Title: sec.Title}
	for _, id := range sec.FieldIDs {
		spec := s.Field(id)
		label, value := identityLabel(id), rec.Field(id)
		if spec != nil {
			label = spec.Label
			value = formatFieldValue(spec, value)
		} else if value == "" {
			value = emptyValue
		}
		page.Fields = append(page.Fields, Field{Label: label, Value: value})
	}
	return page
}

// requestInfoPage is always the first page, regardless of selection.
func (c *Composer) requestInfoPage(rec *domain.SafetyRequestRecord) PageFragment {
	coverage := emptyValue
	if rec.SafetyCoverage != "" {
		coverage = rec.SafetyCoverage.Label()
	}
	return PageFragment{
		SectionID: SectionRequestInfo,
		Title:     "REQUEST INFORMATION",
		Fields: []Field{
			{Label: "Unique Request ID", Value: orNA(rec.UniqueID)},
			{Label: "Personnel Number", Value: orNA(rec.PersonnelNumber)},
			{Label: "Date of Request", Value: FormatDate(rec.Field(domain.FieldDateOfRequest))},
			{Label: "Safety Coverage", Value: coverage},
			{Label: "Directorate", Value: orNA(rec.Directorate)},
			{Label: "Division", Value: orNA(rec.Division)},
			{Label: "Article Details", Value: orNA(rec.Field(schema.FieldArticleDetails))},
			{Label: "Work Description", Value: orNA(rec.Field(schema.FieldWorkDescription))},
			{Label: "Activity Incharge", Value: orNA(rec.Field(schema.FieldActivityInchargeName))},
			{Label: "Activity From Date", Value: FormatDate(rec.Field(schema.FieldActivityFromDate))},
			{Label: "Activity To Date", Value: FormatDate(rec.Field(schema.FieldActivityToDate))},
			{Label: "Ambulance Required", Value: orNA(rec.Field(schema.FieldAmbulanceRequired))},
		},
	}
}

// approvalPage is always the last page, regardless of selection.
func (c *Composer) approvalPage(rec *domain.SafetyRequestRecord) PageFragment {
	return PageFragment{
		SectionID: SectionApproval,
		Title:     "APPROVAL STATUS",
		Fields: []Field{
			{Label: "Head SFEED Status", Value: orNA(rec.HeadSfeedStatus)},
			{Label: "Work Allocated To", Value: orNA(rec.WorkAllocatedTo)},
			{Label: "GD T&S Status", Value: orNA(rec.GdTsStatus)},
		},
	}
}

// formatFieldValue formats a schema field value for print. Dates render as
// long-form date strings; every other non-empty value prints verbatim, the
// stored option value included.
func formatFieldValue(spec *schema.FieldSpec, value string) string {
	if value == "" {
		return emptyValue
	}
	if spec.Kind == schema.KindDate {
		return FormatDate(value)
	}
	return value
}

func identityLabel(id string) string {
	switch id {
	case domain.FieldUniqueID:
		return "Unique Request ID"
	case domain.FieldPersonnelNumber:
		return "Personnel Number"
	case domain.FieldDateOfRequest:
		return "Date of Request"
	case domain.FieldSafetyCoverage:
		return "Safety Coverage"
	case domain.FieldDirectorate:
		return "Directorate"
	case domain.FieldDivision:
		return "Division"
	case domain.FieldHeadSfeedStatus:
		return "Head SFEED Status"
	case domain.FieldWorkAllocatedTo:
		return "Work Allocated To"
	case domain.FieldGdTsStatus:
		return "GD T&S Status"
	}
	return id
}

func orNA(v string) string {
	if v == "" {
		return emptyValue
	}
	return v
}
