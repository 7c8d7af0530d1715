package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mirror roles pushed by the identity provider. The token claim is what
// authorization reads; this column can lag behind it.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleStudent   = "student"
)

// User mirrors an identity-provider account, keyed by its external id.
// Rows are written only by the lifecycle webhooks and the role admin API.
type User struct {
	gorm.Model
	ExternalID      string                    `json:"externalId" gorm:"unique;not null"`
	Name            string                    `json:"name" gorm:"default:''"`
	Email           string                    `json:"email" gorm:"default:''"`
	Role            string                    `json:"role" gorm:"default:'moderator'"`
	EnrolledCourses datatypes.JSONSlice[uint] `json:"enrolledCourses"`
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleModerator, RoleStudent:
		return true
	}
	return false
}
