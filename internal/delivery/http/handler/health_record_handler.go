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

type HealthRecordHandler struct {
	healthRecordUsecase usecase.HealthRecordUsecase
	validator           *validator.CustomValidator
}

func NewHealthRecordHandler(healthRecordUsecase usecase.HealthRecordUsecase, validator *validator.CustomValidator) *HealthRecordHandler {
	return &HealthRecordHandler{
		healthRecordUsecase: healthRecordUsecase,
		validator:           validator,
	}
}

func (h *HealthRecordHandler) GetMyHealthRecords(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}
	h.writeRecords(w, r, email)
}

func (h *HealthRecordHandler) GetPatientHealthRecords(w http.ResponseWriter, r *http.Request) {
	h.writeRecords(w, r, mux.Vars(r)["email"])
}

func (h *HealthRecordHandler) writeRecords(w http.ResponseWriter, r *http.Request, email string) {
	records, err := h.healthRecordUsecase.GetPatientHealthRecords(r.Context(), email)
	if err != nil {
		if err == usecase.ErrInvalidEmail {
			response.BadRequest(w, "Invalid email address")
			return
		}
		response.InternalServerError(w, "Failed to get health records")
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}

func (h *HealthRecordHandler) AddHealthRecord(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req dto.CreateHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.healthRecordUsecase.AddHealthRecord(r.Context(), email, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrInvalidEmail, usecase.ErrInvalidDateFormat, usecase.ErrInvalidRecordType, usecase.ErrInvalidRecordData:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to add health record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health record added successfully", record)
}
