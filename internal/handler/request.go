package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/metrics"
	"github.com/firelane/safecover/internal/report"
	"github.com/firelane/safecover/internal/schema"
	"github.com/firelane/safecover/internal/service"
	"github.com/firelane/safecover/internal/storage"
)

// MaxEnclosureSize caps uploaded activity schedules and driver
// authorizations at 10 MB.
const MaxEnclosureSize = 10 << 20

// RequestHandler serves the safety request lifecycle and document
// rendering endpoints.
type RequestHandler struct {
	requests service.RequestService
	registry *schema.Registry
	composer *report.Composer
	storage  storage.Storage
	logger   *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(
	requests service.RequestService,
	registry *schema.Registry,
	composer *report.Composer,
	store storage.Storage,
	logger *slog.Logger,
) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		registry: registry,
		composer: composer,
		storage:  store,
		logger:   logger,
	}
}

// RegisterRoutes registers all safety request routes with the provided mux.
//
// Routes:
// - GET  /api/v1/coverage-types                          -> CoverageTypes
// - POST /api/v1/safety-requests                         -> Create
// - GET  /api/v1/safety-requests                         -> List
// - GET  /api/v1/safety-requests/coverage/{coverage}     -> ListByCoverage
// - GET  /api/v1/safety-requests/personnel/{personnelNumber} -> ListByPersonnel
// - GET  /api/v1/safety-requests/{id}                    -> Get
// - PUT  /api/v1/safety-requests/{id}                    -> Update
// - DELETE /api/v1/safety-requests/{id}                  -> Delete
// - GET  /api/v1/sections/{id}                           -> Sections
// - GET  /api/v1/documents/{id}                          -> Document
// - POST /api/v1/safety-requests/{id}/enclosures/{field} -> UploadEnclosure
// - GET  /api/v1/safety-requests/{id}/enclosures/{field} -> GetEnclosure
//
// Sections and Document live under their own prefixes: a pattern like
// "/safety-requests/{id}/sections" also matches
// "/safety-requests/coverage/sections", which conflicts with the
// coverage and personnel listing routes and makes ServeMux registration
// panic.
func (h *RequestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/coverage-types", h.CoverageTypes)
	mux.HandleFunc("POST /api/v1/safety-requests", h.Create)
	mux.HandleFunc("GET /api/v1/safety-requests", h.List)
	mux.HandleFunc("GET /api/v1/safety-requests/coverage/{coverage}", h.ListByCoverage)
	mux.HandleFunc("GET /api/v1/safety-requests/personnel/{personnelNumber}", h.ListByPersonnel)
	mux.HandleFunc("GET /api/v1/safety-requests/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/safety-requests/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/safety-requests/{id}", h.Delete)
	mux.HandleFunc("GET /api/v1/sections/{id}", h.Sections)
	mux.HandleFunc("GET /api/v1/documents/{id}", h.Document)
	mux.HandleFunc("POST /api/v1/safety-requests/{id}/enclosures/{field}", h.UploadEnclosure)
	mux.HandleFunc("GET /api/v1/safety-requests/{id}/enclosures/{field}", h.GetEnclosure)
}

// CoverageTypes lists the selectable coverage types in form order.
func (h *RequestHandler) CoverageTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.CoverageTypes())
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "RequestHandler.Create"

	var rec domain.SafetyRequestRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	created, err := h.requests.Create(r.Context(), &rec)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.RequestsCreated.WithLabelValues(created.SafetyCoverage.String()).Inc()

	writeJSON(w, http.StatusCreated, map[string]string{"uniqueId": created.UniqueID})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "RequestHandler.Update"

	var rec domain.SafetyRequestRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid request body"))
		return
	}

	updated, err := h.requests.Update(r.Context(), r.PathValue("id"), &rec)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Delete(r.Context(), r.PathValue("id")); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.requests.List(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *RequestHandler) ListByCoverage(w http.ResponseWriter, r *http.Request) {
	coverage := domain.CoverageType(r.PathValue("coverage"))
	summaries, err := h.requests.ListByCoverage(r.Context(), coverage)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *RequestHandler) ListByPersonnel(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.requests.ListByPersonnel(r.Context(), r.PathValue("personnelNumber"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Sections lists the printable document sections for a request, with
// availability derived from the stored answers.
func (h *RequestHandler) Sections(w http.ResponseWriter, r *http.Request) {
	rec, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.composer.Sections(rec))
}

// Document renders a stored request as a printable document.
//
// Query parameters:
//   - format: "html" (default) or "pdf"
//   - sections: comma-separated section ids to include; empty selects
//     every available section
func (h *RequestHandler) Document(w http.ResponseWriter, r *http.Request) {
	const op = "RequestHandler.Document"

	rec, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	renderer, contentType, err := h.renderer(op, r.URL.Query().Get("format"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	selected := h.selectedSections(rec, r.URL.Query().Get("sections"))
	if len(selected) == 0 {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Please select at least one test type to print"))
		return
	}

	doc := h.composer.Compose(rec, selected)

	var buf bytes.Buffer
	if _, err := renderer.Render(r.Context(), doc, &buf); err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to render document"))
		return
	}

	// Archive the latest rendered copy next to the request's enclosures.
	// Serving the document does not depend on the archive succeeding.
	key := storage.DocumentKey(rec.UniqueID, string(renderer.Format()))
	archiveOpts := storage.PutOptions{ContentType: contentType, Overwrite: true}
	if err := h.storage.Put(r.Context(), key, bytes.NewReader(buf.Bytes()), archiveOpts); err != nil {
		h.logger.Warn("document archive failed", "request_id", rec.UniqueID, "key", key, "error", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", "safety-request-"+rec.UniqueID+"."+string(renderer.Format())))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("document write failed", "request_id", rec.UniqueID, "error", err)
		return
	}

	metrics.DocumentsRendered.WithLabelValues(string(renderer.Format())).Inc()
}

func (h *RequestHandler) renderer(op, format string) (report.Renderer, string, error) {
	switch format {
	case "", "html":
		return report.NewHTMLRenderer(), "text/html; charset=utf-8", nil
	case "pdf":
		return report.NewPDFRenderer(), "application/pdf", nil
	default:
		return nil, "", domain.Invalid(op, "Unsupported document format: "+format)
	}
}

// selectedSections resolves the sections query parameter to the set of
// section ids to include, keeping only sections the record makes
// available.
func (h *RequestHandler) selectedSections(rec *domain.SafetyRequestRecord, raw string) map[string]bool {
	available := h.composer.Sections(rec)

	requested := make(map[string]bool)
	if raw != "" {
		for _, id := range strings.Split(raw, ",") {
			requested[strings.TrimSpace(id)] = true
		}
	}

	selected := make(map[string]bool)
	for _, s := range available {
		if !s.Available {
			continue
		}
		if raw == "" || requested[s.ID] {
			selected[s.ID] = true
		}
	}
	return selected
}

// UploadEnclosure stores a file attachment (activity schedule, driver
// authorization) against a request field.
func (h *RequestHandler) UploadEnclosure(w http.ResponseWriter, r *http.Request) {
	const op = "RequestHandler.UploadEnclosure"

	rec, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	fieldID := r.PathValue("field")
	if err := h.checkEnclosureField(op, rec, fieldID); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if err := r.ParseMultipartForm(MaxEnclosureSize); err != nil {
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ETOOLARGE, op, "Enclosure exceeds the 10 MB limit"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Missing file upload"))
		return
	}
	defer file.Close()

	key := storage.EnclosureKey(rec.UniqueID, fieldID, header.Filename)
	err = h.storage.Put(r.Context(), key, file, storage.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
		MaxSize:     MaxEnclosureSize,
		Overwrite:   true,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to store enclosure"))
		return
	}

	// Remember the stored key so validation sees the field as filled.
	rec.Fields[fieldID] = key
	if _, err := h.requests.Update(r.Context(), rec.UniqueID, rec); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.EnclosuresStored.Inc()

	h.logger.Info("enclosure stored", "request_id", rec.UniqueID, "field", fieldID, "key", key)

	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

// GetEnclosure streams a stored file attachment back to the caller.
func (h *RequestHandler) GetEnclosure(w http.ResponseWriter, r *http.Request) {
	const op = "RequestHandler.GetEnclosure"

	rec, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	fieldID := r.PathValue("field")
	key := rec.Fields[fieldID]
	if key == "" {
		ErrorResponse(w, r, h.logger, domain.NotFound(op, "enclosure", fieldID))
		return
	}

	data, info, err := h.storage.Get(r.Context(), key)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to load enclosure"))
		return
	}
	defer data.Close()

	w.Header().Set("Content-Type", info.ContentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprint(info.Size))
	}
	_, _ = io.Copy(w, data)
}

// checkEnclosureField restricts uploads to file-kind fields of the
// record's active coverage schema.
func (h *RequestHandler) checkEnclosureField(op string, rec *domain.SafetyRequestRecord, fieldID string) error {
	s, err := h.registry.Schema(rec.SafetyCoverage)
	if err != nil {
		return err
	}
	spec := s.Field(fieldID)
	if spec == nil || spec.Kind != schema.KindFile {
		return domain.Invalid(op, "Field does not accept file enclosures: "+fieldID)
	}
	return nil
}
