// Package v1 provides the API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teacherlog/teacherlog/application/service"
	"github.com/teacherlog/teacherlog/domain/contribution"
	"github.com/teacherlog/teacherlog/infrastructure/api/middleware"
	"github.com/teacherlog/teacherlog/infrastructure/api/v1/dto"
)

const deletedMessage = "Contribution deleted successfully"

// errBadBody covers request bodies that fail to decode at all.
var errBadBody = contribution.NewValidationError("", "Invalid request body")

// ContributionsRouter handles contribution record endpoints.
type ContributionsRouter struct {
	contributions *service.Contribution
	logger        *slog.Logger
}

// NewContributionsRouter creates a new ContributionsRouter.
func NewContributionsRouter(contributions *service.Contribution, logger *slog.Logger) *ContributionsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContributionsRouter{
		contributions: contributions,
		logger:        logger,
	}
}

// Routes returns the chi router for contribution endpoints.
func (r *ContributionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)

	return router
}

// Create handles POST /api/contributions.
//
//	@Summary		Create contribution
//	@Description	Validate, sanitize and store a new contribution record
//	@Tags			contributions
//	@Accept			json
//	@Produce		json
//	@Param			contribution	body		dto.CreateContributionRequest	true	"Contribution payload"
//	@Success		200	{object}	dto.ContributionResponse
//	@Failure		400	{object}	middleware.ErrorResponse
//	@Router			/contributions [post]
func (r *ContributionsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.CreateContributionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, errBadBody, r.logger)
		return
	}

	created, err := r.contributions.Create(req.Context(), body.ToParams())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ContributionToDTO(created))
}

// List handles GET /api/contributions.
//
//	@Summary		List contributions
//	@Description	Get all contribution records, newest date first, capped at 1000
//	@Tags			contributions
//	@Produce		json
//	@Success		200	{array}		dto.ContributionResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Router			/contributions [get]
func (r *ContributionsRouter) List(w http.ResponseWriter, req *http.Request) {
	records, err := r.contributions.List(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ContributionsToDTO(records))
}

// Get handles GET /api/contributions/{id}.
//
//	@Summary		Get contribution
//	@Description	Get a single contribution record by identifier
//	@Tags			contributions
//	@Produce		json
//	@Param			id	path		string	true	"Record identifier"
//	@Success		200	{object}	dto.ContributionResponse
//	@Failure		400	{object}	middleware.ErrorResponse
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Router			/contributions/{id} [get]
func (r *ContributionsRouter) Get(w http.ResponseWriter, req *http.Request) {
	record, err := r.contributions.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ContributionToDTO(record))
}

// Update handles PUT /api/contributions/{id}.
//
//	@Summary		Update contribution
//	@Description	Apply a partial update to a contribution record
//	@Tags			contributions
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Record identifier"
//	@Param			contribution	body		dto.UpdateContributionRequest	true	"Fields to update"
//	@Success		200	{object}	dto.ContributionResponse
//	@Failure		400	{object}	middleware.ErrorResponse
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Router			/contributions/{id} [put]
func (r *ContributionsRouter) Update(w http.ResponseWriter, req *http.Request) {
	var body dto.UpdateContributionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, errBadBody, r.logger)
		return
	}

	updated, err := r.contributions.Update(req.Context(), chi.URLParam(req, "id"), body.ToParams())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ContributionToDTO(updated))
}

// Delete handles DELETE /api/contributions/{id}.
//
//	@Summary		Delete contribution
//	@Description	Remove a contribution record
//	@Tags			contributions
//	@Produce		json
//	@Param			id	path		string	true	"Record identifier"
//	@Success		200	{object}	dto.MessageResponse
//	@Failure		400	{object}	middleware.ErrorResponse
//	@Failure		404	{object}	middleware.ErrorResponse
//	@Router			/contributions/{id} [delete]
func (r *ContributionsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	if err := r.contributions.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: deletedMessage})
}
