package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/service"
)

// EmployeeHandler serves the employee directory and login endpoints.
type EmployeeHandler struct {
	employees service.EmployeeService
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employees service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		logger:    logger,
	}
}

// RegisterRoutes registers all employee routes with the provided mux.
// The login endpoint is wrapped with limitLogin to slow brute-force
// attempts.
//
// Routes:
// - POST /api/v1/employees             -> Register
// - POST /api/v1/employees/login       -> Login
// - GET  /api/v1/employees             -> List
// - GET  /api/v1/employees/{personnelNo} -> Get
func (h *EmployeeHandler) RegisterRoutes(mux *http.ServeMux, limitLogin func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/v1/employees", h.Register)
	mux.Handle("POST /api/v1/employees/login", limitLogin(http.HandlerFunc(h.Login)))
	mux.HandleFunc("GET /api/v1/employees", h.List)
	mux.HandleFunc("GET /api/v1/employees/{personnelNo}", h.Get)
}

type registerRequest struct {
	PersonnelNo string `json:"personnelNo"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Directorate string `json:"directorate"`
	Division    string `json:"division"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (h *EmployeeHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "EmployeeHandler.Register"

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	profile, err := h.employees.Register(r.Context(), service.RegisterEmployeeParams{
		PersonnelNo: req.PersonnelNo,
		Name:        req.Name,
		Designation: req.Designation,
		Directorate: req.Directorate,
		Division:    req.Division,
		Phone:       req.Phone,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "EmployeeHandler.Login"

	var params domain.LoginParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	profile, err := h.employees.Login(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.employees.List(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employees.Get(r.Context(), r.PathValue("personnelNo"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
