// Package service contains the business logic layer.
//
// Services orchestrate interactions between the repository and domain
// logic. They are responsible for:
// - Input validation
// - Business rule enforcement
// - Error translation (database errors -> domain errors)
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt password hashing.
	BcryptCost = 12

	// MinPasswordLength is the minimum password length.
	MinPasswordLength = 8

	// MaxPasswordLength prevents DoS via bcrypt on very long passwords.
	// bcrypt caps input at 72 bytes anyway.
	MaxPasswordLength = 72
)

// =============================================================================
// Interface Definition
// =============================================================================

// RegisterEmployeeParams holds the input for employee registration.
type RegisterEmployeeParams struct {
	PersonnelNo string
	Name        string
	Designation string
	Directorate string
	Division    string
	Phone       string
	Email       string
	Password    string
}

// EmployeeService defines the interface for employee directory operations.
type EmployeeService interface {
	// Register creates a new employee with a bcrypt-hashed password.
	// Returns domain.ECONFLICT if the personnel number is already taken.
	Register(ctx context.Context, params RegisterEmployeeParams) (*domain.EmployeeProfile, error)

	// Login verifies credentials and returns the employee profile.
	// Returns domain.EUNAUTHORIZED for invalid credentials.
	Login(ctx context.Context, params domain.LoginParams) (*domain.EmployeeProfile, error)

	// Get retrieves an employee by personnel number.
	// Returns domain.ENOTFOUND if no such employee exists.
	Get(ctx context.Context, personnelNo string) (*domain.EmployeeProfile, error)

	// List retrieves all employees ordered by personnel number.
	List(ctx context.Context) ([]domain.EmployeeProfile, error)
}

// =============================================================================
// Implementation
// =============================================================================

type employeeService struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(queries *repository.Queries, logger *slog.Logger) EmployeeService {
	return &employeeService{
		queries: queries,
		logger:  logger,
	}
}

func (s *employeeService) Register(ctx context.Context, params RegisterEmployeeParams) (*domain.EmployeeProfile, error) {
	const op = "EmployeeService.Register"

	params.PersonnelNo = strings.TrimSpace(params.PersonnelNo)
	params.Name = strings.TrimSpace(params.Name)
	if params.PersonnelNo == "" {
		return nil, domain.Invalid(op, "Personnel number is required")
	}
	if params.Name == "" {
		return nil, domain.Invalid(op, "Name is required")
	}
	if len(params.Password) < MinPasswordLength {
		return nil, domain.Invalid(op, "Password must be at least 8 characters")
	}
	if len(params.Password) > MaxPasswordLength {
		return nil, domain.Invalid(op, "Password must be 72 characters or less")
	}

	_, err := s.queries.GetEmployee(ctx, params.PersonnelNo)
	if err == nil {
		// Hash anyway so success and conflict take comparable time.
		_, _ = bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
		return nil, domain.Conflict(op, "Personnel number already registered")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err, op, "Failed to check personnel number availability")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to hash password")
	}

	row, err := s.queries.CreateEmployee(ctx, repository.CreateEmployeeParams{
		PersonnelNo:  params.PersonnelNo,
		Name:         params.Name,
		Designation:  strings.TrimSpace(params.Designation),
		Directorate:  strings.TrimSpace(params.Directorate),
		Division:     strings.TrimSpace(params.Division),
		Phone:        strings.TrimSpace(params.Phone),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash: string(hash),
	})
	if err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, domain.Conflict(op, "Personnel number already registered")
		}
		return nil, domain.Internal(err, op, "Failed to create employee")
	}

	s.logger.Info("employee registered", "personnel_no", row.PersonnelNo)

	return rowToProfile(row), nil
}

func (s *employeeService) Login(ctx context.Context, params domain.LoginParams) (*domain.EmployeeProfile, error) {
	const op = "EmployeeService.Login"

	personnelNo := strings.TrimSpace(params.PersonnelNo)
	if personnelNo == "" || params.Password == "" {
		return nil, domain.Unauthorized(op, "Invalid personnel number or password")
	}

	row, err := s.queries.GetEmployee(ctx, personnelNo)
	if errors.Is(err, sql.ErrNoRows) {
		// Burn a comparison so missing accounts are not distinguishable
		// from wrong passwords by response time.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(params.Password))
		return nil, domain.Unauthorized(op, "Invalid personnel number or password")
	}
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to look up employee")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(params.Password)); err != nil {
		s.logger.Warn("login failed", "personnel_no", personnelNo)
		return nil, domain.Unauthorized(op, "Invalid personnel number or password")
	}

	s.logger.Info("login succeeded", "personnel_no", personnelNo)

	return rowToProfile(row), nil
}

func (s *employeeService) Get(ctx context.Context, personnelNo string) (*domain.EmployeeProfile, error) {
	const op = "EmployeeService.Get"

	row, err := s.queries.GetEmployee(ctx, personnelNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(op, "employee", personnelNo)
	}
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to look up employee")
	}
	return rowToProfile(row), nil
}

func (s *employeeService) List(ctx context.Context) ([]domain.EmployeeProfile, error) {
	const op = "EmployeeService.List"

	rows, err := s.queries.ListEmployees(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list employees")
	}
	profiles := make([]domain.EmployeeProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, *rowToProfile(row))
	}
	return profiles, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize
// login timing when the personnel number does not exist.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("safecover-dummy-credential"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}()

func rowToProfile(row repository.Employee) *domain.EmployeeProfile {
	return &domain.EmployeeProfile{
		PersonnelNo: row.PersonnelNo,
		Name:        row.Name,
		Designation: row.Designation,
		Directorate: row.Directorate,
		Division:    row.Division,
		Phone:       row.Phone,
		Email:       row.Email,
	}
}
