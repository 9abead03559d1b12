package model

import "time"

type Vacancy struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	UserID      string      `gorm:"index;not null" json:"-"`
	Title       string      `gorm:"not null" json:"title"`
	Company     string      `gorm:"not null" json:"company"`
	Location    string      `gorm:"not null" json:"location"`
	Salary      string      `json:"salary"`
	Contract    string      `gorm:"not null" json:"contract"`
	Description string      `gorm:"not null" json:"description"`
	Skills      StringSlice `json:"skills"`

	// Slug used in public links. Derived from the title with a short
	// random suffix to avoid collisions
	URL string `gorm:"uniqueIndex;not null" json:"url"`

	Candidates []Candidate `gorm:"foreignKey:VacancyID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
