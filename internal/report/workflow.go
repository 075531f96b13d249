package report

import (
	"github.com/firelane/safecover/internal/domain"
)

// =============================================================================
// Print Workflow
// =============================================================================

// WorkflowState is the state of the selective-print workflow.
type WorkflowState string

const (
	// StateIdle means no record is offered for printing.
	StateIdle WorkflowState = "idle"

	// StateSectionsOffered means a record with at least one available
	// section is loaded and the user is choosing sections.
	StateSectionsOffered WorkflowState = "sectionsOffered"

	// StateComposing means a composition is being produced. The workflow
	// returns to idle as soon as the document is handed off.
	StateComposing WorkflowState = "composing"
)

// Workflow drives the print flow: Idle -> SectionsOffered once a record with
// printable sections exists, -> Composing on the user's print action (which
// requires at least one selected section), -> Idle after the composed
// document is handed off. Section selections never persist across records.
type Workflow struct {
	composer *Composer
	state    WorkflowState
	rec      *domain.SafetyRequestRecord
	selected map[string]bool
}

// NewWorkflow creates an idle print workflow.
func NewWorkflow(composer *Composer) *Workflow {
	return &Workflow{composer: composer, state: StateIdle}
}

// State returns the current workflow state.
func (w *Workflow) State() WorkflowState {
	return w.state
}

// Offer loads a record into the workflow. The workflow moves to
// SectionsOffered if the record has at least one available section;
// otherwise it stays idle. Any previous selection is discarded.
func (w *Workflow) Offer(rec *domain.SafetyRequestRecord) []SectionOption {
	w.rec = rec
	w.selected = make(map[string]bool)

	options := w.composer.Sections(rec)
	for _, opt := range options {
		if opt.Available {
			w.state = StateSectionsOffered
			return options
		}
	}
	w.state = StateIdle
	return options
}

// Toggle flips the selection of a section while sections are offered.
func (w *Workflow) Toggle(sectionID string) error {
	const op = "print.toggle"
	if w.state != StateSectionsOffered {
		return domain.Invalid(op, "no record is offered for printing")
	}
	w.selected[sectionID] = !w.selected[sectionID]
	return nil
}

// SelectedCount returns how many sections are currently selected.
func (w *Workflow) SelectedCount() int {
	n := 0
	for _, on := range w.selected {
		if on {
			n++
		}
	}
	return n
}

// Compose produces the document for the current record and selection. With
// no section selected it reports a user-visible validation message and the
// workflow stays in SectionsOffered; on success the workflow returns to
// Idle and the selection is cleared.
func (w *Workflow) Compose() (*Document, error) {
	const op = "print.compose"
	if w.state != StateSectionsOffered {
		return nil, domain.Invalid(op, "no record is offered for printing")
	}
	if w.SelectedCount() == 0 {
		return nil, domain.Invalid(op, "Please select at least one test type to print")
	}

	w.state = StateComposing
	doc := w.composer.Compose(w.rec, w.selected)

	w.state = StateIdle
	w.rec = nil
	w.selected = nil
	return doc, nil
}
