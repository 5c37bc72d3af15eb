package handler

import (
	"errors"
	"net/http"

	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"

	"github.com/gorilla/mux"
)

type RewardHandler struct {
	rewardUsecase usecase.RewardUsecase
}

func NewRewardHandler(rewardUsecase usecase.RewardUsecase) *RewardHandler {
	return &RewardHandler{
		rewardUsecase: rewardUsecase,
	}
}

func (h *RewardHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardUsecase.GetRewards(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		if err == usecase.ErrInvalidRewardType {
			response.BadRequest(w, "Type must be one of: medical, financial, service")
			return
		}
		response.InternalServerError(w, "Failed to get rewards")
		return
	}

	response.Success(w, http.StatusOK, "Rewards retrieved successfully", rewards)
}

func (h *RewardHandler) GetMyAchievements(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	achievements, err := h.rewardUsecase.GetAchievements(r.Context(), email)
	if err != nil {
		response.InternalServerError(w, "Failed to get achievements")
		return
	}

	response.Success(w, http.StatusOK, "Achievements retrieved successfully", achievements)
}

func (h *RewardHandler) GetMyPoints(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	summary, err := h.rewardUsecase.GetPointsSummary(r.Context(), email)
	if err != nil {
		response.InternalServerError(w, "Failed to get points")
		return
	}

	response.Success(w, http.StatusOK, "Points retrieved successfully", summary)
}

func (h *RewardHandler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(w, r)
	if !ok {
		return
	}

	redemption, err := h.rewardUsecase.RedeemReward(r.Context(), email, mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRewardNotFound):
			response.NotFound(w, "Reward not found")
		case errors.Is(err, usecase.ErrRewardUnavailable):
			response.Conflict(w, "Reward is not available")
		case errors.Is(err, usecase.ErrInsufficientPoints):
			response.Conflict(w, "Insufficient points")
		default:
			response.InternalServerError(w, "Failed to redeem reward")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reward redeemed successfully", redemption)
}

func (h *RewardHandler) AwardAchievement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	award, err := h.rewardUsecase.AwardAchievement(r.Context(), vars["email"], vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrAchievementNotFound:
			response.NotFound(w, "Achievement not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to award achievement")
		}
		return
	}

	response.Success(w, http.StatusOK, "Achievement processed successfully", award)
}
