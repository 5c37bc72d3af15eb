package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDTrialTeam = 1
	RoleIDPatient   = 2
)

// RoleNames constants
const (
	RoleTrialTeam = "trialTeam"
	RolePatient   = "patient"
)

// DefaultRoles are created by migration.
func DefaultRoles() []Role {
	return []Role{
		{ID: RoleIDTrialTeam, RoleName: RoleTrialTeam, Description: "Clinical trial staff reviewing applications and patients"},
		{ID: RoleIDPatient, RoleName: RolePatient, Description: "Patients browsing and applying for trials"},
	}
}

// RoleNameByID returns the role name for a role id, or "" when unknown.
func RoleNameByID(id int) string {
	switch id {
	case RoleIDTrialTeam:
		return RoleTrialTeam
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}
