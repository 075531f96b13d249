// Package form owns the mutable state of one coverage request being edited:
// the record, the active coverage type, the declaration flag, and the
// submit/save lifecycle. All network traffic goes through the Lifecycle
// interface; the controller itself never performs I/O beyond that boundary.
package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/schema"
)

// =============================================================================
// Lifecycle Boundary
// =============================================================================

// Lifecycle is the subset of the backend request API the controller needs.
// The full HTTP client in internal/client satisfies it.
type Lifecycle interface {
	// Create persists a new record and returns the store-assigned unique id.
	Create(ctx context.Context, rec *domain.SafetyRequestRecord) (string, error)

	// Get fetches a persisted record by id.
	Get(ctx context.Context, id string) (*domain.SafetyRequestRecord, error)

	// Update replaces a persisted record.
	Update(ctx context.Context, id string, rec *domain.SafetyRequestRecord) error
}

// =============================================================================
// Controller
// =============================================================================

// Options configures which workflow capabilities a controller instance
// offers. The intake page, the edit page, and the print-enabled review page
// are all the same controller with different options.
type Options struct {
	RequiresLogin       bool
	AllowEdit           bool
	AllowSelectivePrint bool
}

// Controller holds the single mutable record for one editing session.
//
// The record is single-owner and edited serially; the internal mutex exists
// only to make the submit-in-flight gate and late async completions safe,
// not to support concurrent editing.
type Controller struct {
	registry  *schema.Registry
	lifecycle Lifecycle
	opts      Options
	logger    *slog.Logger

	mu       sync.Mutex
	rec      *domain.SafetyRequestRecord
	operator *domain.EmployeeProfile
	inFlight bool

	// gen is bumped whenever the record is replaced wholesale. A fetch that
	// resolves after the session moved on compares generations and discards
	// its result instead of clobbering unrelated state.
	gen uint64
}

// NewController creates a controller with an empty record.
func NewController(registry *schema.Registry, lifecycle Lifecycle, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		registry:  registry,
		lifecycle: lifecycle,
		opts:      opts,
		logger:    logger,
		rec:       domain.NewRecord("", "", ""),
	}
}

// Options returns the workflow capabilities of this controller.
func (c *Controller) Options() Options {
	return c.opts
}

// SetOperator pins the session to the logged-in employee. The operator's
// personnel number, directorate, and division seed the record's identity
// fields and survive ResetForSameIdentity.
func (c *Controller) SetOperator(p *domain.EmployeeProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = p
	c.rec.PersonnelNumber = p.PersonnelNo
	c.rec.Directorate = p.Directorate
	c.rec.Division = p.Division
	c.gen++
}

// =============================================================================
// Editing Operations
// =============================================================================

// SetCoverageType switches the active coverage type. Values entered under a
// previously selected type are retained but become inert: they are neither
// validated nor required unless the user switches back.
func (c *Controller) SetCoverageType(t domain.CoverageType) error {
	const op = "form.setCoverageType"
	if !t.IsValid() {
		return domain.Invalid(op, "unrecognized coverage type: "+string(t))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.SafetyCoverage = t
	return nil
}

// SetField writes a coverage-schema field value. Ids outside the union of
// all coverage schemas are rejected; identity fields are managed by the
// controller and cannot be written through this path.
func (c *Controller) SetField(fieldID, value string) error {
	const op = "form.setField"
	if domain.IsIdentityField(fieldID) {
		return domain.Invalid(op, "identity field cannot be set directly: "+fieldID)
	}
	if !c.registry.KnownField(fieldID) {
		return domain.Invalid(op, "unknown field: "+fieldID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.rec.Fields, fieldID)
	} else {
		c.rec.Fields[fieldID] = value
	}
	return nil
}

// SetDeclared records acceptance of the safety declaration.
func (c *Controller) SetDeclared(declared bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec.Declared = declared
}

// ResetForSameIdentity clears all field values, the coverage type, and the
// declaration, keeping only the identity fields pinned to the logged-in
// operator. Used after a successful save so the operator can start a new
// request without re-authenticating.
func (c *Controller) ResetForSameIdentity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	var personnel, directorate, division string
	if c.operator != nil {
		personnel = c.operator.PersonnelNo
		directorate = c.operator.Directorate
		division = c.operator.Division
	} else {
		personnel = c.rec.PersonnelNumber
		directorate = c.rec.Directorate
		division = c.rec.Division
	}
	c.rec = domain.NewRecord(personnel, directorate, division)
	c.gen++
}

// Snapshot returns an immutable copy of the record for submission or
// printing. Later edits never affect the snapshot.
func (c *Controller) Snapshot() *domain.SafetyRequestRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec.Clone()
}

// Validate runs the validation engine against the active coverage type.
func (c *Controller) Validate() domain.ValidationResult {
	c.mu.Lock()
	rec := c.rec.Clone()
	c.mu.Unlock()
	return c.registry.Validate(rec, rec.SafetyCoverage)
}

// =============================================================================
// Persistence Operations
// =============================================================================

// Submit validates the record and creates it through the lifecycle client.
// At most one submit or update may be in flight at a time; a second call
// while one is pending fails with ECONFLICT rather than producing two
// persisted records. On success the form is reset for the same identity and
// the store-assigned unique id is returned.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	const op = "form.submit"

	snap, err := c.beginPersist(op)
	if err != nil {
		return "", err
	}

	id, err := c.lifecycle.Create(ctx, snap)

	c.mu.Lock()
	c.inFlight = false
	if err == nil {
		c.resetLocked()
	}
	c.mu.Unlock()

	if err != nil {
		return "", err
	}
	c.logger.Info("request submitted", "unique_id", id, "coverage", snap.SafetyCoverage)
	return id, nil
}

// Update validates the record and saves it over the persisted original.
// Only available when the controller was configured with AllowEdit. The
// in-flight gate is shared with Submit.
func (c *Controller) Update(ctx context.Context) error {
	const op = "form.update"

	if !c.opts.AllowEdit {
		return domain.Invalid(op, "editing is not enabled for this form")
	}

	snap, err := c.beginPersist(op)
	if err != nil {
		return err
	}
	if snap.UniqueID == "" {
		c.clearInFlight()
		return domain.Invalid(op, "record has not been persisted yet")
	}

	err = c.lifecycle.Update(ctx, snap.UniqueID, snap)
	c.clearInFlight()
	if err != nil {
		return err
	}
	c.logger.Info("request updated", "unique_id", snap.UniqueID)
	return nil
}

// beginPersist validates, takes the in-flight gate, and returns a snapshot.
func (c *Controller) beginPersist(op string) (*domain.SafetyRequestRecord, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, domain.Conflict(op, "a submission is already in progress")
	}
	rec := c.rec.Clone()
	c.inFlight = true
	c.mu.Unlock()

	result := c.registry.Validate(rec, rec.SafetyCoverage)
	if !result.OK() {
		c.clearInFlight()
		return nil, result.Err(op)
	}
	if rec.DateOfRequest.IsZero() {
		rec.DateOfRequest = time.Now()
	}
	return rec, nil
}

func (c *Controller) clearInFlight() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Load hydrates the controller from a persisted record for editing. If the
// session was reset or re-seeded while the fetch was pending, the stale
// result is discarded.
func (c *Controller) Load(ctx context.Context, id string) error {
	const op = "form.load"

	if !c.opts.AllowEdit {
		return domain.Invalid(op, "editing is not enabled for this form")
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	rec, err := c.lifecycle.Get(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.logger.Debug("discarding stale record fetch", "unique_id", id)
		return nil
	}
	// Editing never mutates the persisted original in place.
	c.rec = rec.Clone()
	// A persisted record was necessarily submitted with the declaration
	// accepted.
	c.rec.Declared = true
	c.gen++
	return nil
}
