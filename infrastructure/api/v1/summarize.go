package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teacherlog/teacherlog/application/service"
	"github.com/teacherlog/teacherlog/infrastructure/api/middleware"
	"github.com/teacherlog/teacherlog/infrastructure/api/v1/dto"
)

// SummarizeRouter handles the summarization endpoint.
type SummarizeRouter struct {
	summaries *service.Summary
	logger    *slog.Logger
}

// NewSummarizeRouter creates a new SummarizeRouter.
func NewSummarizeRouter(summaries *service.Summary, logger *slog.Logger) *SummarizeRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummarizeRouter{
		summaries: summaries,
		logger:    logger,
	}
}

// Routes returns the chi router for the summarization endpoint.
func (r *SummarizeRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Summarize)
	return router
}

// Summarize handles POST /api/summarize.
//
//	@Summary		Summarize contributions
//	@Description	Generate an appraisal-ready prose summary of a batch of contribution records
//	@Tags			summarize
//	@Accept			json
//	@Produce		json
//	@Param			batch	body		dto.SummarizeRequest	true	"Records to summarize"
//	@Success		200	{object}	dto.SummarizeResponse
//	@Failure		400	{object}	middleware.ErrorResponse
//	@Failure		503	{object}	middleware.ErrorResponse
//	@Router			/summarize [post]
func (r *SummarizeRouter) Summarize(w http.ResponseWriter, req *http.Request) {
	var body dto.SummarizeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, errBadBody, r.logger)
		return
	}

	summary, err := r.summaries.Summarize(req.Context(), body.ToItems())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SummarizeResponse{Summary: summary})
}
