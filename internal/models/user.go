package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleDonor = "donor"
	RoleNGO   = "ngo"
	RoleAdmin = "admin"
)

// User is a donor, a recipient NGO, or an admin.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'donor'" json:"role"`
	Organization string         `gorm:"size:255" json:"organization,omitempty"`
	Phone        string         `gorm:"size:50" json:"phone,omitempty"`
	Address      string         `gorm:"size:500" json:"address,omitempty"`
	Latitude     *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude    *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleDonor || r == RoleNGO || r == RoleAdmin
}
