package handler

import (
	"encoding/json"
	"net/http"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"
	"trial-bridge/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// sessionEmail returns the email of the logged-in user or writes a 401.
func sessionEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok || email == "" {
		response.Unauthorized(w, "Invalid token")
		return "", false
	}
	return email, true
}

func (h *PatientHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}
	h.writeProfile(w, r, email)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, mux.Vars(r)["email"])
}

func (h *PatientHandler) writeProfile(w http.ResponseWriter, r *http.Request, email string) {
	profile, err := h.patientUsecase.GetPatientProfile(r.Context(), email)
	if err != nil {
		switch err {
		case usecase.ErrInvalidEmail:
			response.BadRequest(w, "Invalid email address")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", profile)
}

func (h *PatientHandler) UpdateSelfProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientUsecase.UpdatePatientProfile(r.Context(), email, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrInvalidEmail, usecase.ErrInvalidGender, usecase.ErrInvalidAge:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
