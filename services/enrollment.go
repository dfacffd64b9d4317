package services

import (
	"errors"

	"learnhub/models"

	"gorm.io/gorm"
)

// EnrollmentService manages the NOT_ENROLLED -> ENROLLED transition for a
// (user, course) pair. ENROLLED is terminal: there is no unenroll path.
type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// Status is a pure lookup. Anonymous identities are never enrolled and do not
// hit the database.
func (s *EnrollmentService) Status(userID, courseID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := s.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Enroll creates the enrollment after re-checking that the course is visible
// to an authenticated viewer. The unique index on (user_id, course_id) is the
// sole concurrency guard: a duplicate-key violation from the store is the
// expected already-enrolled outcome, not a failure.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	if userID == 0 {
		return nil, ErrSignInRequired
	}

	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotVisible
		}
		return nil, err
	}
	if err := GateCourse(course, true); err != nil {
		return nil, err
	}

	enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return &enrollment, nil
}
