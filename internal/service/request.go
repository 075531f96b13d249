package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/repository"
	"github.com/firelane/safecover/internal/schema"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// =============================================================================
// Interface Definition
// =============================================================================

// RequestService defines the interface for safety request persistence.
//
// All writes re-run coverage-schema validation server side; a client that
// skips its own validation still cannot persist an incomplete request.
type RequestService interface {
	// Create persists a new request and returns it with its assigned id.
	// Returns domain.EINVALID if the record fails schema validation.
	Create(ctx context.Context, rec *domain.SafetyRequestRecord) (*domain.SafetyRequestRecord, error)

	// Get retrieves a request by id.
	// Returns domain.ENOTFOUND if no such request exists.
	Get(ctx context.Context, id string) (*domain.SafetyRequestRecord, error)

	// Update replaces a persisted request.
	// Returns domain.ENOTFOUND if no such request exists and
	// domain.EINVALID if the record fails schema validation.
	Update(ctx context.Context, id string, rec *domain.SafetyRequestRecord) (*domain.SafetyRequestRecord, error)

	// Delete removes a request by id.
	// Returns domain.ENOTFOUND if no such request exists.
	Delete(ctx context.Context, id string) error

	// List retrieves all requests, newest first.
	List(ctx context.Context) ([]domain.RequestSummary, error)

	// ListByCoverage retrieves requests of one coverage type, newest first.
	ListByCoverage(ctx context.Context, coverage domain.CoverageType) ([]domain.RequestSummary, error)

	// ListByPersonnel retrieves one requester's requests, newest first.
	ListByPersonnel(ctx context.Context, personnelNumber string) ([]domain.RequestSummary, error)
}

// =============================================================================
// Implementation
// =============================================================================

type requestService struct {
	queries  *repository.Queries
	registry *schema.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(queries *repository.Queries, registry *schema.Registry, logger *slog.Logger) RequestService {
	return &requestService{
		queries:  queries,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *requestService) Create(ctx context.Context, rec *domain.SafetyRequestRecord) (*domain.SafetyRequestRecord, error) {
	const op = "RequestService.Create"

	if res := s.registry.Validate(rec, rec.SafetyCoverage); !res.OK() {
		return nil, res.Err(op)
	}

	id := uuid.New()
	dateOfRequest := rec.DateOfRequest
	if dateOfRequest.IsZero() {
		dateOfRequest = s.now()
	}

	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to encode request fields")
	}

	row, err := s.queries.CreateSafetyRequest(ctx, repository.CreateSafetyRequestParams{
		ID:              id,
		PersonnelNumber: rec.PersonnelNumber,
		SafetyCoverage:  rec.SafetyCoverage.String(),
		Directorate:     rec.Directorate,
		Division:        rec.Division,
		DateOfRequest:   dateOfRequest,
		Declared:        rec.Declared,
		HeadSfeedStatus: rec.HeadSfeedStatus,
		WorkAllocatedTo: rec.WorkAllocatedTo,
		GdTsStatus:      rec.GdTsStatus,
		Fields:          fields,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to create safety request")
	}

	s.logger.Info("safety request created",
		"request_id", row.ID,
		"personnel_number", row.PersonnelNumber,
		"safety_coverage", row.SafetyCoverage,
	)

	return rowToRecord(row)
}

func (s *requestService) Get(ctx context.Context, id string) (*domain.SafetyRequestRecord, error) {
	const op = "RequestService.Get"

	requestID, err := parseRequestID(op, id)
	if err != nil {
		return nil, err
	}

	row, err := s.queries.GetSafetyRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(op, "safety request", id)
	}
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load safety request")
	}
	return rowToRecord(row)
}

func (s *requestService) Update(ctx context.Context, id string, rec *domain.SafetyRequestRecord) (*domain.SafetyRequestRecord, error) {
	const op = "RequestService.Update"

	requestID, err := parseRequestID(op, id)
	if err != nil {
		return nil, err
	}

	if res := s.registry.Validate(rec, rec.SafetyCoverage); !res.OK() {
		return nil, res.Err(op)
	}

	existing, err := s.queries.GetSafetyRequest(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(op, "safety request", id)
	}
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load safety request")
	}

	dateOfRequest := rec.DateOfRequest
	if dateOfRequest.IsZero() {
		dateOfRequest = existing.DateOfRequest
	}

	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to encode request fields")
	}

	row, err := s.queries.UpdateSafetyRequest(ctx, repository.UpdateSafetyRequestParams{
		ID:              requestID,
		PersonnelNumber: rec.PersonnelNumber,
		SafetyCoverage:  rec.SafetyCoverage.String(),
		Directorate:     rec.Directorate,
		Division:        rec.Division,
		DateOfRequest:   dateOfRequest,
		Declared:        rec.Declared,
		HeadSfeedStatus: rec.HeadSfeedStatus,
		WorkAllocatedTo: rec.WorkAllocatedTo,
		GdTsStatus:      rec.GdTsStatus,
		Fields:          fields,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to update safety request")
	}

	s.logger.Info("safety request updated", "request_id", row.ID)

	return rowToRecord(row)
}

func (s *requestService) Delete(ctx context.Context, id string) error {
	const op = "RequestService.Delete"

	requestID, err := parseRequestID(op, id)
	if err != nil {
		return err
	}

	affected, err := s.queries.DeleteSafetyRequest(ctx, requestID)
	if err != nil {
		return domain.Internal(err, op, "Failed to delete safety request")
	}
	if affected == 0 {
		return domain.NotFound(op, "safety request", id)
	}

	s.logger.Info("safety request deleted", "request_id", requestID)

	return nil
}

func (s *requestService) List(ctx context.Context) ([]domain.RequestSummary, error) {
	const op = "RequestService.List"

	rows, err := s.queries.ListSafetyRequests(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list safety requests")
	}
	return rowsToSummaries(rows), nil
}

func (s *requestService) ListByCoverage(ctx context.Context, coverage domain.CoverageType) ([]domain.RequestSummary, error) {
	const op = "RequestService.ListByCoverage"

	if !coverage.IsValid() {
		return nil, domain.Invalid(op, "Unrecognized coverage type")
	}
	rows, err := s.queries.ListSafetyRequestsByCoverage(ctx, coverage.String())
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list safety requests")
	}
	return rowsToSummaries(rows), nil
}

func (s *requestService) ListByPersonnel(ctx context.Context, personnelNumber string) ([]domain.RequestSummary, error) {
	const op = "RequestService.ListByPersonnel"

	if personnelNumber == "" {
		return nil, domain.Invalid(op, "Personnel number is required")
	}
	rows, err := s.queries.ListSafetyRequestsByPersonnel(ctx, personnelNumber)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list safety requests")
	}
	return rowsToSummaries(rows), nil
}

// =============================================================================
// Conversions
// =============================================================================

func parseRequestID(op, id string) (uuid.UUID, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NotFound(op, "safety request", id)
	}
	return requestID, nil
}

func encodeFields(fields map[string]string) (pqtype.NullRawMessage, error) {
	if len(fields) == 0 {
		return pqtype.NullRawMessage{}, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return pqtype.NullRawMessage{}, err
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

func rowToRecord(row repository.SafetyRequest) (*domain.SafetyRequestRecord, error) {
	rec := &domain.SafetyRequestRecord{
		UniqueID:        row.ID.String(),
		PersonnelNumber: row.PersonnelNumber,
		SafetyCoverage:  domain.CoverageType(row.SafetyCoverage),
		Directorate:     row.Directorate,
		Division:        row.Division,
		DateOfRequest:   row.DateOfRequest,
		Declared:        row.Declared,
		HeadSfeedStatus: row.HeadSfeedStatus,
		WorkAllocatedTo: row.WorkAllocatedTo,
		GdTsStatus:      row.GdTsStatus,
		Fields:          make(map[string]string),
	}
	if row.Fields.Valid {
		if err := json.Unmarshal(row.Fields.RawMessage, &rec.Fields); err != nil {
			return nil, domain.Internal(err, "RequestService", "Failed to decode request fields")
		}
	}
	return rec, nil
}

func rowsToSummaries(rows []repository.SafetyRequest) []domain.RequestSummary {
	summaries := make([]domain.RequestSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.RequestSummary{
			UniqueID:        row.ID.String(),
			PersonnelNumber: row.PersonnelNumber,
			SafetyCoverage:  domain.CoverageType(row.SafetyCoverage),
			DateOfRequest:   row.DateOfRequest,
			HeadSfeedStatus: row.HeadSfeedStatus,
		})
	}
	return summaries
}
