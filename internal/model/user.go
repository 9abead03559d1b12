// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Reset token state. Both fields are always set or cleared
	// together, never one without the other
	ResetToken   *string    `gorm:"index" json:"-"`
	ResetExpires *time.Time `json:"-"`

	ProfileImage string `json:"profile_image,omitempty"`

	Vacancies []Vacancy `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
