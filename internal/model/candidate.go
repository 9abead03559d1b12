package model

import "time"

type Candidate struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	VacancyID string `gorm:"index;not null" json:"-"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`

	// Name of the uploaded CV file as stored by the upload backend
	CVFile string `gorm:"not null" json:"cv_file"`

	CreatedAt time.Time `json:"created_at"`
}
