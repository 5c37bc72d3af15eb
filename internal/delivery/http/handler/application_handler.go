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

type ApplicationHandler struct {
	applicationUsecase usecase.ApplicationUsecase
	validator          *validator.CustomValidator
}

func NewApplicationHandler(applicationUsecase usecase.ApplicationUsecase, validator *validator.CustomValidator) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUsecase: applicationUsecase,
		validator:          validator,
	}
}

func (h *ApplicationHandler) ApplyForTrial(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req dto.ApplyForTrialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	application, err := h.applicationUsecase.ApplyForTrial(r.Context(), email, &req)
	if err != nil {
		switch err {
		case usecase.ErrTrialNotFound:
			response.NotFound(w, "Trial not found")
		case usecase.ErrAlreadyApplied:
			response.Conflict(w, "You have already applied for this trial")
		default:
			response.InternalServerError(w, "Failed to apply for trial")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Application submitted successfully", application)
}

func (h *ApplicationHandler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	applications, err := h.applicationUsecase.GetPatientApplications(r.Context(), email)
	if err != nil {
		response.InternalServerError(w, "Failed to get applications")
		return
	}

	response.Success(w, http.StatusOK, "Applications retrieved successfully", applications)
}

func (h *ApplicationHandler) GetAllApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applicationUsecase.GetAllApplications(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get applications")
		return
	}

	response.Success(w, http.StatusOK, "Applications retrieved successfully", applications)
}

func (h *ApplicationHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	application, err := h.applicationUsecase.UpdateApplicationStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrApplicationNotFound:
			response.NotFound(w, "Application not found")
		case usecase.ErrInvalidApplicationStatus:
			response.BadRequest(w, "Status must be approved or rejected")
		case usecase.ErrApplicationAlreadyDecided:
			response.Conflict(w, "Application has already been decided")
		default:
			response.InternalServerError(w, "Failed to update application status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Application status updated successfully", application)
}
