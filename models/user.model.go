package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. A user has exactly one role, fixed at creation.
const (
	RoleTeacher       = "teacher"
	RoleStudent       = "student"
	RoleCommunityOrg  = "community_org"
	RolePlatformAdmin = "platform_admin"
)

type User struct {
	gorm.Model
	Username  string     `json:"username" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"not null"`
	FullName  string     `json:"full_name" gorm:"not null"`
	Avatar    string     `json:"avatar" gorm:"default:''"`
	LastLogin *time.Time `json:"last_login"`
	// Teacher specific fields
	TeacherCode string `json:"teacher_code" gorm:"default:''"`
	Department  string `json:"department" gorm:"default:''"`
	// Student specific fields
	StudentCode string `json:"student_code" gorm:"default:''"`
	Grade       string `json:"grade" gorm:"default:''"`
	// Community organization specific fields
	OrgName       string `json:"org_name" gorm:"default:''"`
	ContactPerson string `json:"contact_person" gorm:"default:''"`
	Phone         string `json:"phone" gorm:"default:''"`
	Address       string `json:"address" gorm:"default:''"`
	Description   string `json:"description" gorm:"default:''"`
}

// ValidRole reports whether role is one of the four platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleTeacher, RoleStudent, RoleCommunityOrg, RolePlatformAdmin:
		return true
	}
	return false
}
