package models

import (
	"time"

	"gorm.io/gorm"
)

// Member belongs to exactly one community organization account.
// Role/status are free-form labels, there is no state machine.
type Member struct {
	gorm.Model
	OrgID    uint   `json:"org_id" gorm:"index;not null"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"default:''"`
	Phone    string `json:"phone" gorm:"default:''"`
	Role     string `json:"role" gorm:"default:'member'"`
	JoinDate string `json:"join_date" gorm:"default:''"`
	Status   string `json:"status" gorm:"default:'active'"`
	Notes    string `json:"notes" gorm:"default:''"`
	Org      User   `json:"-" gorm:"foreignKey:OrgID"`
}

type MemberGroup struct {
	gorm.Model
	OrgID       uint   `json:"org_id" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Org         User   `json:"-" gorm:"foreignKey:OrgID"`
}

// MemberGroupRelation links members to groups. The composite primary key
// makes assignment idempotent: a second insert fails with a duplicate-key
// error and is reported as "already in group", leaving exactly one row.
type MemberGroupRelation struct {
	MemberID  uint      `json:"member_id" gorm:"primaryKey"`
	GroupID   uint      `json:"group_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}
