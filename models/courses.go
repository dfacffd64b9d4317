package models

import "gorm.io/gorm"

// Visibility controls who can discover a published course in the catalog.
type Visibility string

const (
	VisibilityEveryone Visibility = "everyone"
	VisibilitySignedIn Visibility = "signed_in"
)

type Course struct {
	gorm.Model
	Title        string     `gorm:"not null"`
	Description  string
	InstructorID uint       `gorm:"index;not null"`
	Published    bool       `gorm:"default:false"`
	Visibility   Visibility `gorm:"default:everyone"`
	Contents     []CourseContent
}

type CourseContent struct {
	gorm.Model
	CourseID uint   `gorm:"uniqueIndex:idx_course_position;not null"`
	Position int    `gorm:"uniqueIndex:idx_course_position;not null"`
	Title    string `gorm:"not null"`
	Body     string
	Hidden   bool `gorm:"default:false"`
}
