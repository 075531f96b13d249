package repository

import (
	"context"
	"time"
)

// Employee mirrors a row of the employees table.
type Employee struct {
	PersonnelNo  string
	Name         string
	Designation  string
	Directorate  string
	Division     string
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

const createEmployee = `
INSERT INTO employees (personnel_no, name, designation, directorate, division, phone, email, password_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING personnel_no, name, designation, directorate, division, phone, email, password_hash, created_at
`

type CreateEmployeeParams struct {
	PersonnelNo  string
	Name         string
	Designation  string
	Directorate  string
	Division     string
	Phone        string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateEmployee(ctx context.Context, arg CreateEmployeeParams) (Employee, error) {
	row := q.db.QueryRowContext(ctx, createEmployee,
		arg.PersonnelNo,
		arg.Name,
		arg.Designation,
		arg.Directorate,
		arg.Division,
		arg.Phone,
		arg.Email,
		arg.PasswordHash,
	)
	var e Employee
	err := row.Scan(
		&e.PersonnelNo,
		&e.Name,
		&e.Designation,
		&e.Directorate,
		&e.Division,
		&e.Phone,
		&e.Email,
		&e.PasswordHash,
		&e.CreatedAt,
	)
	return e, err
}

const getEmployee = `
SELECT personnel_no, name, designation, directorate, division, phone, email, password_hash, created_at
FROM employees
WHERE personnel_no = $1
`

func (q *Queries) GetEmployee(ctx context.Context, personnelNo string) (Employee, error) {
	row := q.db.QueryRowContext(ctx, getEmployee, personnelNo)
	var e Employee
	err := row.Scan(
		&e.PersonnelNo,
		&e.Name,
		&e.Designation,
		&e.Directorate,
		&e.Division,
		&e.Phone,
		&e.Email,
		&e.PasswordHash,
		&e.CreatedAt,
	)
	return e, err
}

const listEmployees = `
SELECT personnel_no, name, designation, directorate, division, phone, email, password_hash, created_at
FROM employees
ORDER BY personnel_no
`

func (q *Queries) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := q.db.QueryContext(ctx, listEmployees)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(
			&e.PersonnelNo,
			&e.Name,
			&e.Designation,
			&e.Directorate,
			&e.Division,
			&e.Phone,
			&e.Email,
			&e.PasswordHash,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
