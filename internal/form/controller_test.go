package form

import (
	"context"
	"sync"
	"testing"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLifecycle is an in-memory Lifecycle implementation. Create can be made
// to block on a channel to simulate a slow network.
type fakeLifecycle struct {
	mu       sync.Mutex
	records  map[string]*domain.SafetyRequestRecord
	nextID   int
	block    chan struct{}
	blockGet chan struct{}

	createCalls int
	getCalls    int
}

func newFakeLifecycle() *fakeLifecycle {
	return &fakeLifecycle{records: make(map[string]*domain.SafetyRequestRecord)}
}

func (f *fakeLifecycle) Create(ctx context.Context, rec *domain.SafetyRequestRecord) (string, error) {
	f.mu.Lock()
	f.createCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := string(rune('A' + f.nextID - 1))
	stored := rec.Clone()
	stored.UniqueID = id
	f.records[id] = stored
	return id, nil
}

func (f *fakeLifecycle) Get(ctx context.Context, id string) (*domain.SafetyRequestRecord, error) {
	f.mu.Lock()
	f.getCalls++
	blockGet := f.blockGet
	f.mu.Unlock()

	if blockGet != nil {
		<-blockGet
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.NotFound("fake.get", "safety request", id)
	}
	return rec.Clone(), nil
}

func (f *fakeLifecycle) Update(ctx context.Context, id string, rec *domain.SafetyRequestRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return domain.NotFound("fake.update", "safety request", id)
	}
	f.records[id] = rec.Clone()
	return nil
}

func operator() *domain.EmployeeProfile {
	return &domain.EmployeeProfile{
		PersonnelNo: "12345",
		Name:        "S. Verma",
		Directorate: "DRDL",
		Division:    "Engineering",
	}
}

func newTestController(t *testing.T, lc Lifecycle, opts Options) *Controller {
	t.Helper()
	return NewController(schema.MustNew(), lc, opts, nil)
}

func fillOther(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetCoverageType(domain.CoverageOther))
	require.NoError(t, c.SetField(schema.FieldOtherDetails, "crane lift near fuel store"))
	c.SetDeclared(true)
}

func TestSetFieldRejectsUnknownIDs(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{})

	err := c.SetField("launchCode", "0000")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	err = c.SetField(domain.FieldUniqueID, "forged")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestSetCoverageTypeRetainsInertValues(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{})
	c.SetOperator(operator())

	require.NoError(t, c.SetCoverageType(domain.CoverageIntegration))
	require.NoError(t, c.SetField(schema.FieldIntegrationFacility, "SIF-1"))

	require.NoError(t, c.SetCoverageType(domain.CoverageTransportation))

	snap := c.Snapshot()
	assert.Equal(t, domain.CoverageTransportation, snap.SafetyCoverage)
	// Retained but inert: still in the record, never reported by validation.
	assert.Equal(t, "SIF-1", snap.Field(schema.FieldIntegrationFacility))
	res := c.Validate()
	assert.False(t, res.HasField(schema.FieldIntegrationFacility))
}

func TestSnapshotIsIsolatedFromLaterEdits(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{})
	fillOther(t, c)

	snap := c.Snapshot()
	require.NoError(t, c.SetField(schema.FieldOtherDetails, "changed"))

	assert.Equal(t, "crane lift near fuel store", snap.Field(schema.FieldOtherDetails))
}

func TestValidateRoundTrip(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{})
	c.SetOperator(operator())
	require.NoError(t, c.SetCoverageType(domain.CoverageStaticTest))
	c.SetDeclared(true)

	// Required fields not yet set.
	res := c.Validate()
	assert.False(t, res.OK())

	for id, v := range map[string]string{
		schema.FieldTestBed:                   "STB-1",
		schema.FieldArticleDetails:            "booster segment",
		schema.FieldWorkDescription:           "full duration static test",
		schema.FieldTarbClearance:             "obtained",
		schema.FieldReferenceNo:               "TARB/2026/114",
		schema.FieldTestControllerName:        "K. Rao",
		schema.FieldTestControllerDesignation: "Sc-E",
		schema.FieldDateOfTest:                "2026-09-10",
		schema.FieldTestScheduleTime:          "09:30",
		schema.FieldAmbulanceRequired:         "required",
	} {
		require.NoError(t, c.SetField(id, v))
	}

	result := c.Validate()
	assert.True(t, result.OK(), "failures: %v", result.Failures)
}

func TestSubmitResetsForSameIdentity(t *testing.T) {
	lc := newFakeLifecycle()
	c := newTestController(t, lc, Options{RequiresLogin: true})
	c.SetOperator(operator())
	fillOther(t, c)

	id, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	snap := c.Snapshot()
	assert.Equal(t, "12345", snap.PersonnelNumber)
	assert.Equal(t, "DRDL", snap.Directorate)
	assert.Empty(t, snap.SafetyCoverage)
	assert.Empty(t, snap.Fields)
	assert.False(t, snap.Declared)
}

func TestSubmitFailsValidation(t *testing.T) {
	lc := newFakeLifecycle()
	c := newTestController(t, lc, Options{})

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Zero(t, lc.createCalls)
}

func TestSubmitRejectsSecondWhileInFlight(t *testing.T) {
	lc := newFakeLifecycle()
	lc.block = make(chan struct{})
	c := newTestController(t, lc, Options{})
	c.SetOperator(operator())
	fillOther(t, c)

	first := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		first <- err
	}()

	// Wait for the first submit to reach the lifecycle client.
	for {
		lc.mu.Lock()
		started := lc.createCalls == 1
		lc.mu.Unlock()
		if started {
			break
		}
	}

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	close(lc.block)
	require.NoError(t, <-first)
	assert.Equal(t, 1, lc.createCalls)
}

func TestLoadAndUpdate(t *testing.T) {
	lc := newFakeLifecycle()
	seed := domain.NewRecord("12345", "DRDL", "Engineering")
	seed.SafetyCoverage = domain.CoverageOther
	seed.Fields[schema.FieldOtherDetails] = "original details"
	seed.Declared = true
	id, err := lc.Create(context.Background(), seed)
	require.NoError(t, err)

	c := newTestController(t, lc, Options{AllowEdit: true, AllowSelectivePrint: true})
	require.NoError(t, c.Load(context.Background(), id))

	snap := c.Snapshot()
	assert.Equal(t, id, snap.UniqueID)
	assert.Equal(t, "original details", snap.Field(schema.FieldOtherDetails))

	require.NoError(t, c.SetField(schema.FieldOtherDetails, "revised details"))
	require.NoError(t, c.Update(context.Background()))

	stored, err := lc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "revised details", stored.Field(schema.FieldOtherDetails))
}

func TestLoadRequiresEditCapability(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{})

	err := c.Load(context.Background(), "A")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	lc := newFakeLifecycle()
	seed := domain.NewRecord("12345", "DRDL", "Engineering")
	seed.SafetyCoverage = domain.CoverageOther
	seed.Fields[schema.FieldOtherDetails] = "stale"
	seed.Declared = true
	id, err := lc.Create(context.Background(), seed)
	require.NoError(t, err)

	lc.blockGet = make(chan struct{})
	c := newTestController(t, lc, Options{AllowEdit: true})
	c.SetOperator(operator())

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), id) }()

	// Wait for the fetch to start, then navigate away while it is pending.
	for {
		lc.mu.Lock()
		started := lc.getCalls == 1
		lc.mu.Unlock()
		if started {
			break
		}
	}
	c.ResetForSameIdentity()
	close(lc.blockGet)
	require.NoError(t, <-done)

	// The late result must be discarded, not applied over the new session.
	snap := c.Snapshot()
	assert.Empty(t, snap.UniqueID)
	assert.Empty(t, snap.Fields)
	assert.Equal(t, "12345", snap.PersonnelNumber)
}

func TestUpdateRequiresPersistedRecord(t *testing.T) {
	c := newTestController(t, newFakeLifecycle(), Options{AllowEdit: true})
	c.SetOperator(operator())
	fillOther(t, c)

	err := c.Update(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
