package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/query"
	browseuc "github.com/kailas-cloud/restodex/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	manageuc "github.com/kailas-cloud/restodex/internal/usecase/manage"
)

const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the restaurant directory over HTTP.
type Server struct {
	browse        *browseuc.Service
	manage        *manageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	browse *browseuc.Service,
	manage *manageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		browse: browse,
		manage: manage,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrConflict, http.StatusConflict, codeConflict),
	}
	return s
}

// Routes mounts every endpoint on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Get("/", s.ListRestaurants)
		r.Post("/", s.CreateRestaurant)
		r.Get("/search", s.SearchRestaurants)
		r.Get("/filter", s.FilterRestaurants)
		r.Get("/score-range", s.ScoreRangeRestaurants)
		r.Get("/nearby", s.NearbyRestaurants)
		r.Get("/stats", s.Stats)
		r.Get("/business-id/{businessId}", s.GetRestaurantByBusinessID)
		r.Get("/{id}", s.GetRestaurant)
		r.Put("/{id}", s.UpdateRestaurant)
		r.Patch("/{id}", s.PatchRestaurant)
		r.Delete("/{id}", s.DeleteRestaurant)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	sort, err := sortFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, meta, err := s.browse.List(r.Context(), sort, pageFromRequest(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Data:       entriesToResponse(entries),
		Pagination: meta,
	})
}

// SearchRestaurants handles GET /api/v1/restaurants/search.
func (s *Server) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	text, err := query.NewText(r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	sort, err := sortFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, meta, err := s.browse.Search(r.Context(), text, sort, pageFromRequest(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Data:       entriesToResponse(entries),
		Pagination: meta,
	})
}

// FilterRestaurants handles GET /api/v1/restaurants/filter.
func (s *Server) FilterRestaurants(w http.ResponseWriter, r *http.Request) {
	attr, err := attributeFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	sort, err := sortFromRequest(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, meta, err := s.browse.Filter(r.Context(), attr, sort, pageFromRequest(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Data:       entriesToResponse(entries),
		Pagination: meta,
	})
}

// ScoreRangeRestaurants handles GET /api/v1/restaurants/score-range.
func (s *Server) ScoreRangeRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := query.NewScoreRange(q.Get("min"), q.Get("max"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, meta, err := s.browse.ScoreRange(r.Context(), rng, pageFromRequest(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Data:       entriesToResponse(entries),
		Pagination: meta,
	})
}

// NearbyRestaurants handles GET /api/v1/restaurants/nearby.
func (s *Server) NearbyRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nearby, err := query.NewNearby(q.Get("lng"), q.Get("lat"), q.Get("radius"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	entries, meta, err := s.browse.Nearby(r.Context(), nearby, pageFromRequest(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Data:       entriesToResponse(entries),
		Pagination: meta,
	})
}

// Stats handles GET /api/v1/restaurants/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.browse.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{TotalRestaurants: stats.TotalRestaurants})
}

// CreateRestaurant handles POST /api/v1/restaurants.
func (s *Server) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := s.manage.Create(r.Context(), inputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/restaurants/"+created.ID())
	writeJSON(w, http.StatusCreated, restaurantToResponse(created))
}

// GetRestaurant handles GET /api/v1/restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := s.manage.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(rest))
}

// GetRestaurantByBusinessID handles GET /api/v1/restaurants/business-id/{businessId}.
func (s *Server) GetRestaurantByBusinessID(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.Atoi(chi.URLParam(r, "businessId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "businessId must be an integer")
		return
	}

	rest, err := s.manage.GetByBusinessID(r.Context(), businessID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(rest))
}

// UpdateRestaurant handles PUT /api/v1/restaurants/{id}.
func (s *Server) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.manage.Update(r.Context(), chi.URLParam(r, "id"), inputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(updated))
}

// PatchRestaurant handles PATCH /api/v1/restaurants/{id}.
func (s *Server) PatchRestaurant(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := patchFromRequest(req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	updated, err := s.manage.PartialUpdate(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurantToResponse(updated))
}

// DeleteRestaurant handles DELETE /api/v1/restaurants/{id}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.manage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func pageFromRequest(r *http.Request) query.Page {
	q := r.URL.Query()
	return query.NewPage(q.Get("page"), q.Get("limit"))
}

func sortFromRequest(r *http.Request) (query.Sort, error) {
	q := r.URL.Query()
	return query.NewSort(q.Get("sort_by"), q.Get("order"))
}

func attributeFromRequest(r *http.Request) (query.Attribute, error) {
	q := r.URL.Query()
	cuisine, borough := q.Get("cuisine"), q.Get("borough")
	switch {
	case cuisine != "" && borough != "":
		return query.NewCuisineBorough(cuisine, borough)
	case cuisine != "":
		return query.NewCuisine(cuisine)
	case borough != "":
		return query.NewBorough(borough)
	default:
		return query.Attribute{}, &domain.ValidationError{
			Violations: []string{"at least one of cuisine or borough is required"},
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrInvalidID,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// validationHandler handles ValidationError with the full violations list.
func validationHandler(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:       codeValidationFailed,
		Message:    "validation failed",
		Violations: verr.Violations,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
