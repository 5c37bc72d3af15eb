package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

func RewardToResponse(reward *entity.Reward) *dto.RewardResponse {
	if reward == nil {
		return nil
	}

	return &dto.RewardResponse{
		ID:             reward.ID,
		Title:          reward.Title,
		Description:    reward.Description,
		Type:           string(reward.Type),
		PointsRequired: reward.PointsRequired,
		Available:      reward.Available,
		ExpiryDate:     reward.ExpiryDate,
	}
}

func RewardsToResponses(rewards []entity.Reward) []dto.RewardResponse {
	responses := make([]dto.RewardResponse, len(rewards))
	for i := range rewards {
		responses[i] = *RewardToResponse(&rewards[i])
	}
	return responses
}

// AchievementToResponse converts an Achievement; dateCompleted is empty
// for achievements the patient has not earned yet.
func AchievementToResponse(achievement *entity.Achievement, dateCompleted string) dto.AchievementResponse {
	return dto.AchievementResponse{
		ID:            achievement.ID,
		Title:         achievement.Title,
		Description:   achievement.Description,
		PointsAwarded: achievement.PointsAwarded,
		Completed:     dateCompleted != "",
		DateCompleted: dateCompleted,
	}
}
