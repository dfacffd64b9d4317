package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment records that a user has joined a course. The composite unique
// index is the authoritative guard against duplicate enrollments, including
// concurrent ones. Rows are never deleted: ENROLLED is a terminal state.
type Enrollment struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID uint `gorm:"uniqueIndex:idx_user_course;not null"`
}

// CourseCompletion is the completion marker consumed by analytics. It is
// written by the platform when a learner finishes a course, not derived from
// quiz results.
type CourseCompletion struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_course_done;not null"`
	CourseID    uint      `gorm:"uniqueIndex:idx_user_course_done;not null"`
	CompletedAt time.Time `gorm:"autoCreateTime"`
}
