package dto

import "time"

type RewardResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	PointsRequired int    `json:"points_required"`
	Available      bool   `json:"available"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
}

type RewardListResponse struct {
	Rewards []RewardResponse `json:"rewards"`
	Total   int              `json:"total"`
}

type AchievementResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PointsAwarded int    `json:"points_awarded"`
	Completed     bool   `json:"completed"`
	DateCompleted string `json:"date_completed,omitempty"`
}

type AchievementsResponse struct {
	Completed []AchievementResponse `json:"completed"`
	Pending   []AchievementResponse `json:"pending"`
}

type AwardAchievementResponse struct {
	Awarded     bool                `json:"awarded"`
	Achievement AchievementResponse `json:"achievement"`
}

type PointsSummaryResponse struct {
	Balance         int `json:"balance"`
	TotalEarned     int `json:"total_earned"`
	Level           int `json:"level"`
	NextLevelPoints int `json:"next_level_points"`
}

type RedemptionResponse struct {
	ID               string    `json:"id"`
	RewardID         string    `json:"reward_id"`
	RewardTitle      string    `json:"reward_title"`
	PointsSpent      int       `json:"points_spent"`
	RemainingBalance int       `json:"remaining_balance"`
	RedeemedAt       time.Time `json:"redeemed_at"`
}
