package models

import "time"

// Roles a user can hold.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// User is an identity record. Email is stored lowercase so the unique index
// is effectively case-insensitive.
type User struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"not null" json:"-"`
	Role               string    `gorm:"not null" json:"role"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	Department         string    `json:"department,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
