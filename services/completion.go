package services

import (
	"errors"

	"learnhub/models"

	"gorm.io/gorm"
)

// CompletionSource supplies the completion signal analytics consumes. What
// marks a course "completed" is deliberately not derived from quiz results
// here; the default implementation reads explicit completion markers.
type CompletionSource interface {
	// Completed reports whether the user has completed the course.
	Completed(userID, courseID uint) (bool, error)
	// CompletedCount counts distinct enrolled users who completed the course.
	CompletedCount(courseID uint) (int64, error)
}

// MarkerCompletionSource backs the completion signal with the
// course_completions table.
type MarkerCompletionSource struct {
	DB *gorm.DB
}

func NewMarkerCompletionSource(db *gorm.DB) *MarkerCompletionSource {
	return &MarkerCompletionSource{DB: db}
}

func (m *MarkerCompletionSource) Completed(userID, courseID uint) (bool, error) {
	var count int64
	err := m.DB.Model(&models.CourseCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// CompletedCount only counts users who still hold an enrollment, so a stray
// marker can never push completed above totalEnrollments.
func (m *MarkerCompletionSource) CompletedCount(courseID uint) (int64, error) {
	var count int64
	err := m.DB.Model(&models.CourseCompletion{}).
		Joins("JOIN enrollments ON enrollments.user_id = course_completions.user_id AND enrollments.course_id = course_completions.course_id").
		Where("course_completions.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// MarkCompleted records the completion signal for an enrolled user.
// Idempotent: marking twice is not an error.
func (m *MarkerCompletionSource) MarkCompleted(userID, courseID uint) error {
	var enrollments int64
	err := m.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&enrollments).Error
	if err != nil {
		return err
	}
	if enrollments == 0 {
		return ErrNotEnrolled
	}

	marker := models.CourseCompletion{UserID: userID, CourseID: courseID}
	if err := m.DB.Create(&marker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
