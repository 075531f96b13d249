package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// SafetyRequest mirrors a row of the safety_requests table. Section
// answers live in the Fields JSONB column as a flat string map.
type SafetyRequest struct {
	ID              uuid.UUID
	PersonnelNumber string
	SafetyCoverage  string
	Directorate     string
	Division        string
	DateOfRequest   time.Time
	Declared        bool
	HeadSfeedStatus string
	WorkAllocatedTo string
	GdTsStatus      string
	Fields          pqtype.NullRawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const safetyRequestColumns = `id, personnel_number, safety_coverage, directorate, division, date_of_request, declared, head_sfeed_status, work_allocated_to, gd_ts_status, fields, created_at, updated_at`

func scanSafetyRequest(row interface{ Scan(...interface{}) error }) (SafetyRequest, error) {
	var r SafetyRequest
	err := row.Scan(
		&r.ID,
		&r.PersonnelNumber,
		&r.SafetyCoverage,
		&r.Directorate,
		&r.Division,
		&r.DateOfRequest,
		&r.Declared,
		&r.HeadSfeedStatus,
		&r.WorkAllocatedTo,
		&r.GdTsStatus,
		&r.Fields,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const createSafetyRequest = `
INSERT INTO safety_requests (id, personnel_number, safety_coverage, directorate, division, date_of_request, declared, head_sfeed_status, work_allocated_to, gd_ts_status, fields)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + safetyRequestColumns

type CreateSafetyRequestParams struct {
	ID              uuid.UUID
	PersonnelNumber string
	SafetyCoverage  string
	Directorate     string
	Division        string
	DateOfRequest   time.Time
	Declared        bool
	HeadSfeedStatus string
	WorkAllocatedTo string
	GdTsStatus      string
	Fields          pqtype.NullRawMessage
}

func (q *Queries) CreateSafetyRequest(ctx context.Context, arg CreateSafetyRequestParams) (SafetyRequest, error) {
	row := q.db.QueryRowContext(ctx, createSafetyRequest,
		arg.ID,
		arg.PersonnelNumber,
		arg.SafetyCoverage,
		arg.Directorate,
		arg.Division,
		arg.DateOfRequest,
		arg.Declared,
		arg.HeadSfeedStatus,
		arg.WorkAllocatedTo,
		arg.GdTsStatus,
		arg.Fields,
	)
	return scanSafetyRequest(row)
}

const getSafetyRequest = `
SELECT ` + safetyRequestColumns + `
FROM safety_requests
WHERE id = $1
`

func (q *Queries) GetSafetyRequest(ctx context.Context, id uuid.UUID) (SafetyRequest, error) {
	return scanSafetyRequest(q.db.QueryRowContext(ctx, getSafetyRequest, id))
}

const updateSafetyRequest = `
UPDATE safety_requests
SET personnel_number = $2,
    safety_coverage = $3,
    directorate = $4,
    division = $5,
    date_of_request = $6,
    declared = $7,
    head_sfeed_status = $8,
    work_allocated_to = $9,
    gd_ts_status = $10,
    fields = $11,
    updated_at = now()
WHERE id = $1
RETURNING ` + safetyRequestColumns

type UpdateSafetyRequestParams struct {
	ID              uuid.UUID
	PersonnelNumber string
	SafetyCoverage  string
	Directorate     string
	Division        string
	DateOfRequest   time.Time
	Declared        bool
	HeadSfeedStatus string
	WorkAllocatedTo string
	GdTsStatus      string
	Fields          pqtype.NullRawMessage
}

func (q *Queries) UpdateSafetyRequest(ctx context.Context, arg UpdateSafetyRequestParams) (SafetyRequest, error) {
	row := q.db.QueryRowContext(ctx, updateSafetyRequest,
		arg.ID,
		arg.PersonnelNumber,
		arg.SafetyCoverage,
		arg.Directorate,
		arg.Division,
		arg.DateOfRequest,
		arg.Declared,
		arg.HeadSfeedStatus,
		arg.WorkAllocatedTo,
		arg.GdTsStatus,
		arg.Fields,
	)
	return scanSafetyRequest(row)
}

const deleteSafetyRequest = `
DELETE FROM safety_requests
WHERE id = $1
`

func (q *Queries) DeleteSafetyRequest(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteSafetyRequest, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listSafetyRequests = `
SELECT ` + safetyRequestColumns + `
FROM safety_requests
ORDER BY date_of_request DESC, created_at DESC
`

func (q *Queries) ListSafetyRequests(ctx context.Context) ([]SafetyRequest, error) {
	return q.querySafetyRequests(ctx, listSafetyRequests)
}

const listSafetyRequestsByCoverage = `
SELECT ` + safetyRequestColumns + `
FROM safety_requests
WHERE safety_coverage = $1
ORDER BY date_of_request DESC, created_at DESC
`

func (q *Queries) ListSafetyRequestsByCoverage(ctx context.Context, coverage string) ([]SafetyRequest, error) {
	return q.querySafetyRequests(ctx, listSafetyRequestsByCoverage, coverage)
}

const listSafetyRequestsByPersonnel = `
SELECT ` + safetyRequestColumns + `
FROM safety_requests
WHERE personnel_number = $1
ORDER BY date_of_request DESC, created_at DESC
`

func (q *Queries) ListSafetyRequestsByPersonnel(ctx context.Context, personnelNumber string) ([]SafetyRequest, error) {
	return q.querySafetyRequests(ctx, listSafetyRequestsByPersonnel, personnelNumber)
}

func (q *Queries) querySafetyRequests(ctx context.Context, query string, args ...interface{}) ([]SafetyRequest, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SafetyRequest
	for rows.Next() {
		r, err := scanSafetyRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
