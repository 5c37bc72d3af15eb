package handler

import (
	"encoding/json"
	"net/http"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"
	"trial-bridge/pkg/validator"

	"github.com/gorilla/mux"
)

type EducationHandler struct {
	educationUsecase usecase.EducationUsecase
	validator        *validator.CustomValidator
}

func NewEducationHandler(educationUsecase usecase.EducationUsecase, validator *validator.CustomValidator) *EducationHandler {
	return &EducationHandler{
		educationUsecase: educationUsecase,
		validator:        validator,
	}
}

// GetResources lists resources. The first of type, tag and trialId present
// in the query selects the filter.
func (h *EducationHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		resources *dto.ResourceListResponse
		err       error
	)
	switch {
	case query.Get("type") != "":
		resources, err = h.educationUsecase.GetResourcesByType(r.Context(), query.Get("type"))
	case query.Get("tag") != "":
		resources, err = h.educationUsecase.GetResourcesByTag(r.Context(), query.Get("tag"))
	case query.Get("trialId") != "":
		resources, err = h.educationUsecase.GetResourcesByTrialID(r.Context(), query.Get("trialId"))
	default:
		resources, err = h.educationUsecase.GetAllResources(r.Context())
	}
	if err != nil {
		switch err {
		case usecase.ErrInvalidResourceType:
			response.BadRequest(w, "Type must be one of: article, video, faq, infographic")
		default:
			response.InternalServerError(w, "Failed to get resources")
		}
		return
	}

	response.Success(w, http.StatusOK, "Resources retrieved successfully", resources)
}

func (h *EducationHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource, err := h.educationUsecase.GetResourceByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if err == usecase.ErrResourceNotFound {
			response.NotFound(w, "Resource not found")
			return
		}
		response.InternalServerError(w, "Failed to get resource")
		return
	}

	response.Success(w, http.StatusOK, "Resource retrieved successfully", resource)
}

func (h *EducationHandler) GetResourceFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.educationUsecase.GetResourceFeedback(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (h *EducationHandler) GetResourceRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.educationUsecase.GetResourceRating(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.InternalServerError(w, "Failed to get rating")
		return
	}

	response.Success(w, http.StatusOK, "Rating retrieved successfully", rating)
}

func (h *EducationHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.educationUsecase.SubmitFeedback(r.Context(), email, mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrResourceNotFound:
			response.NotFound(w, "Resource not found")
		case usecase.ErrInvalidRating:
			response.BadRequest(w, "Rating must be between 1 and 5")
		default:
			response.InternalServerError(w, "Failed to submit feedback")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feedback submitted successfully", feedback)
}
