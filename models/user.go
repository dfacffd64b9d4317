package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:learner"` // learner, instructor, admin
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

func (u User) IsInstructor() bool {
	return u.Role == "instructor" || u.Role == "admin"
}
