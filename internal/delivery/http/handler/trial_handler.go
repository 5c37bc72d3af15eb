package handler

import (
	"net/http"

	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"

	"github.com/gorilla/mux"
)

type TrialHandler struct {
	trialUsecase usecase.TrialUsecase
}

func NewTrialHandler(trialUsecase usecase.TrialUsecase) *TrialHandler {
	return &TrialHandler{
		trialUsecase: trialUsecase,
	}
}

// GetTrials lists trials, optionally narrowed by the status and search query parameters.
func (h *TrialHandler) GetTrials(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := query.Get("status")
	search := query.Get("search")

	trials, err := h.trialUsecase.SearchTrials(r.Context(), entity.TrialFilter{
		Status: entity.TrialStatus(status),
		Search: search,
	})
	if err != nil {
		switch err {
		case usecase.ErrInvalidTrialStatus:
			response.BadRequest(w, "Status must be one of: recruiting, active, completed")
		default:
			response.InternalServerError(w, "Failed to get trials")
		}
		return
	}

	response.Success(w, http.StatusOK, "Trials retrieved successfully", trials)
}

func (h *TrialHandler) GetTrial(w http.ResponseWriter, r *http.Request) {
	trial, err := h.trialUsecase.GetTrialByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if err == usecase.ErrTrialNotFound {
			response.NotFound(w, "Trial not found")
			return
		}
		response.InternalServerError(w, "Failed to get trial")
		return
	}

	response.Success(w, http.StatusOK, "Trial retrieved successfully", trial)
}

func (h *TrialHandler) GetEnrolledPatients(w http.ResponseWriter, r *http.Request) {
	enrolled, err := h.trialUsecase.GetEnrolledPatients(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if err == usecase.ErrTrialNotFound {
			response.NotFound(w, "Trial not found")
			return
		}
		response.InternalServerError(w, "Failed to get enrolled patients")
		return
	}

	response.Success(w, http.StatusOK, "Enrolled patients retrieved successfully", enrolled)
}
