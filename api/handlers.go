/*
handlers.go - HTTP API handlers for the gratuity engine

PURPOSE:
  Exposes the gratuity calculator via a JSON API. Handles HTTP
  request/response, JSON serialization, and delegates to the core.

ENDPOINTS:
  Calculations:
    POST   /api/calculations       Validate form fields and compute gratuity

  Rules:
    GET    /api/rules              List rule schemes
    POST   /api/rules              Create a custom scheme
    GET    /api/rules/{id}         Get a scheme
    PUT    /api/rules/{id}         Replace a custom scheme
    DELETE /api/rules/{id}         Delete a custom scheme

  Health:
    GET    /health                 Liveness and database check

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Scheme persistence
  - SchemeFactory: JSON to Scheme conversion
  - Schemes: In-memory registry used on the calculation hot path

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (form.go)
  3. Call the core (gratuity.Calculate)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Scheme not found
  - 409: Duplicate id, built-in scheme modification
  - 422: Less than one year of service
  - 500: Internal errors

STATELESS CALCULATIONS:
  Calculations are never stored. Only rule schemes are persisted.

SEE ALSO:
  - dto.go: Request/response data structures
  - form.go: Form validation
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/gratuity-engine/factory"
	"github.com/warp/gratuity-engine/generic"
	"github.com/warp/gratuity-engine/gratuity"
	"github.com/warp/gratuity-engine/store/sqlite"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store         *sqlite.Store
	SchemeFactory *factory.SchemeFactory
	Schemes       *gratuity.Registry
	Logger        *slog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:         store,
		SchemeFactory: factory.NewSchemeFactory(),
		Schemes:       gratuity.NewBuiltinRegistry(),
		Logger:        logger,
	}
}

// LoadSchemes seeds the built-in scheme documents into the store and loads
// every stored scheme into the registry. Invalid documents are skipped.
func (h *Handler) LoadSchemes(ctx context.Context) error {
	var seeds []sqlite.SchemeRecord
	for rule, doc := range factory.BuiltinJSON() {
		seeds = append(seeds, sqlite.SchemeRecord{
			ID:         string(rule),
			Name:       gratuity.Default.MustLookup(rule).Name,
			ConfigJSON: doc,
			Builtin:    true,
		})
	}
	if err := h.Store.SeedSchemes(ctx, seeds); err != nil {
		return err
	}

	records, err := h.Store.ListSchemes(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		scheme, err := h.SchemeFactory.ParseScheme(r.ConfigJSON)
		if err != nil {
			h.Logger.Warn("skipping invalid scheme", slog.String("scheme_id", r.ID), slog.String("err", err.Error()))
			continue
		}
		if err := h.Schemes.Register(*scheme); err != nil {
			h.Logger.Warn("skipping invalid scheme", slog.String("scheme_id", r.ID), slog.String("err", err.Error()))
		}
	}

	h.Logger.Info("schemes loaded", slog.Int("count", len(records)))
	return nil
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate validates the form and computes gratuity.
// POST /api/calculations
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, scheme, err := parseCalculationRequest(req, h.Schemes)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	calc, err := gratuity.Calculate(in, scheme)
	if err != nil {
		var svcErr *gratuity.InsufficientServiceError
		if errors.As(err, &svcErr) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   svcErr.Error(),
				Code:    errorCode(err),
				Details: toDurationDTO(calc.Duration),
			})
			return
		}
		h.writeDomainError(w, r, err)
		return
	}

	h.Logger.Debug("gratuity calculated",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("rule", string(in.Rule)),
		slog.String("period", in.Period.String()),
		slog.Int("total_days", calc.Duration.TotalDays),
	)

	writeJSON(w, http.StatusOK, toCalculationDTO(calc, req))
}

// =============================================================================
// RULE HANDLERS
// =============================================================================

// ListRules returns every stored scheme.
// GET /api/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListSchemes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rules", err)
		return
	}

	dtos := make([]SchemeDTO, 0, len(records))
	for i := range records {
		scheme, ok := h.Schemes.Lookup(gratuity.Rule(records[i].ID))
		if !ok {
			continue
		}
		dtos = append(dtos, toSchemeDTO(scheme, &records[i]))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetRule returns a single scheme.
// GET /api/rules/{id}
func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, scheme, err := h.loadRule(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSchemeDTO(scheme, rec))
}

// CreateRule registers a custom scheme. A missing id is generated.
// POST /api/rules
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var sj factory.SchemeJSON
	if err := decodeBody(w, r, &sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if sj.ID == "" {
		sj.ID = uuid.NewString()
	}

	scheme, err := h.SchemeFactory.FromJSON(sj)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	rec, err := h.persistScheme(r.Context(), *scheme, h.Store.InsertScheme)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.Logger.Info("scheme created", slog.String("scheme_id", rec.ID))
	writeJSON(w, http.StatusCreated, toSchemeDTO(*scheme, rec))
}

// UpdateRule replaces a custom scheme.
// PUT /api/rules/{id}
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, _, err := h.loadRule(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if existing.Builtin {
		h.writeDomainError(w, r, generic.ErrBuiltinScheme)
		return
	}

	var sj factory.SchemeJSON
	if err := decodeBody(w, r, &sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if sj.ID != "" && sj.ID != id {
		writeError(w, http.StatusBadRequest, "Body id does not match URL id", nil)
		return
	}
	sj.ID = id

	scheme, err := h.SchemeFactory.FromJSON(sj)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	rec, err := h.persistScheme(r.Context(), *scheme, h.Store.SaveScheme)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.Logger.Info("scheme updated", slog.String("scheme_id", rec.ID), slog.Int("version", rec.Version))
	writeJSON(w, http.StatusOK, toSchemeDTO(*scheme, rec))
}

// DeleteRule removes a custom scheme.
// DELETE /api/rules/{id}
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, _, err := h.loadRule(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if existing.Builtin {
		h.writeDomainError(w, r, generic.ErrBuiltinScheme)
		return
	}

	if _, err := h.Store.DeleteScheme(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete rule", err)
		return
	}
	h.Schemes.Unregister(gratuity.Rule(id))

	h.Logger.Info("scheme deleted", slog.String("scheme_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and database reachability.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthDTO{Status: "ok", Database: "ok", Schemes: len(h.Schemes.Schemes())}
	status := http.StatusOK
	if err := h.Store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) loadRule(ctx context.Context, id string) (*sqlite.SchemeRecord, gratuity.Scheme, error) {
	rec, err := h.Store.GetScheme(ctx, id)
	if err != nil {
		return nil, gratuity.Scheme{}, err
	}
	if rec == nil {
		return nil, gratuity.Scheme{}, generic.ErrSchemeNotFound
	}
	scheme, ok := h.Schemes.Lookup(gratuity.Rule(id))
	if !ok {
		return nil, gratuity.Scheme{}, generic.ErrSchemeNotFound
	}
	return rec, scheme, nil
}

// persistScheme writes a scheme with save, registers it, and returns the
// stored record.
func (h *Handler) persistScheme(ctx context.Context, scheme gratuity.Scheme, save func(context.Context, sqlite.SchemeRecord) error) (*sqlite.SchemeRecord, error) {
	doc, err := h.SchemeFactory.Marshal(scheme)
	if err != nil {
		return nil, err
	}

	if err := save(ctx, sqlite.SchemeRecord{ID: string(scheme.ID), Name: scheme.Name, ConfigJSON: doc}); err != nil {
		return nil, err
	}
	if err := h.Schemes.Register(scheme); err != nil {
		return nil, err
	}

	rec, err := h.Store.GetScheme(ctx, string(scheme.ID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, generic.ErrSchemeNotFound
	}
	return rec, nil
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *generic.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: vErr.Message, Code: errorCode(err), Field: vErr.Field})
	case generic.IsClientError(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: errorCode(err)})
	case generic.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Rule not found", Code: errorCode(err)})
	case generic.IsConflict(err):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: errorCode(err)})
	default:
		h.Logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Internal error", nil)
	}
}

// errorCode maps sentinel errors to stable machine-readable codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, generic.ErrMissingField):
		return "missing_field"
	case errors.Is(err, generic.ErrInvalidPeriod):
		return "invalid_period"
	case errors.Is(err, generic.ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, generic.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, generic.ErrUnknownRule):
		return "unknown_rule"
	case errors.Is(err, generic.ErrInsufficientService):
		return "insufficient_service"
	case errors.Is(err, generic.ErrInvalidScheme):
		return "invalid_scheme"
	case errors.Is(err, generic.ErrSchemeNotFound):
		return "rule_not_found"
	case errors.Is(err, generic.ErrSchemeExists):
		return "rule_exists"
	case errors.Is(err, generic.ErrBuiltinScheme):
		return "builtin_rule"
	default:
		return ""
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
