package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Role falls back to the role id mapping when Role is not preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleNameByID(user.RoleID)
	}

	response := &dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          role,
		ParticipantID: user.ParticipantID(),
		CreatedAt:     user.CreatedAt,
	}
	if user.Username != nil {
		response.Username = *user.Username
	}
	if user.Phone != nil {
		response.Phone = *user.Phone
	}

	return response
}
