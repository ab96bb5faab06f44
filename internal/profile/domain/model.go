// Package domain contains core types for the profile service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Division is the org unit a user reports into.
type Division string

const (
	DivisionSales    Division = "sales"
	DivisionPresales Division = "presales"
	DivisionManager  Division = "manager"
)

// Valid reports whether the division is one of the known units.
func (d Division) Valid() bool {
	switch d {
	case DivisionSales, DivisionPresales, DivisionManager:
		return true
	}
	return false
}

// Role is a system-level role, distinct from division.
type Role string

const (
	RoleUser       Role = "user"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSuperadmin
}

// Profile carries the directory fields for a user.
type Profile struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;uniqueIndex"`
	FullName  string       `gorm:"column:full_name;type:text;not null"`
	Division  Division     `gorm:"column:division;type:text;not null;index"`
	Phone     string       `gorm:"column:phone;type:text"`
	AvatarURL string       `gorm:"column:avatar_url;type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

// UserRole grants a role to a user. A user may hold several.
type UserRole struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index"`
	Role      Role         `gorm:"column:role;type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (UserRole) TableName() string { return "user_roles" }
