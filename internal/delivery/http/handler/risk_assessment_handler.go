package handler

import (
	"encoding/json"
	"net/http"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"
	"trial-bridge/pkg/validator"
)

type RiskAssessmentHandler struct {
	riskUsecase usecase.RiskAssessmentUsecase
	validator   *validator.CustomValidator
}

func NewRiskAssessmentHandler(riskUsecase usecase.RiskAssessmentUsecase, validator *validator.CustomValidator) *RiskAssessmentHandler {
	return &RiskAssessmentHandler{
		riskUsecase: riskUsecase,
		validator:   validator,
	}
}

func (h *RiskAssessmentHandler) AssessTrialRisk(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	var req dto.RiskAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assessment, err := h.riskUsecase.AssessTrialRisk(r.Context(), email, &req)
	if err != nil {
		switch err {
		case usecase.ErrTrialNotFound:
			response.NotFound(w, "Trial not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to assess trial risk")
		}
		return
	}

	response.Success(w, http.StatusOK, "Risk assessment completed", assessment)
}
