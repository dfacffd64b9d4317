package services

import (
	"learnhub/models"

	"gorm.io/gorm"
)

// CourseVisible reports whether a viewer may discover the course. A course is
// only ever discoverable by non-owners when it is published and not deleted;
// beyond that, sign-in restricted courses require an authenticated viewer.
// The check is pure and is re-evaluated on every request, never cached.
func CourseVisible(course models.Course, authenticated bool) bool {
	if !course.Published || course.DeletedAt.Valid {
		return false
	}
	if authenticated {
		return course.Visibility == models.VisibilityEveryone ||
			course.Visibility == models.VisibilitySignedIn
	}
	return course.Visibility == models.VisibilityEveryone
}

// GateCourse applies the same rule to a single-resource fetch, distinguishing
// the two failure causes so the caller can pick the right redirect: sign-in
// restricted vs. not discoverable at all.
func GateCourse(course models.Course, authenticated bool) error {
	if !course.Published || course.DeletedAt.Valid {
		return ErrCourseNotVisible
	}
	if !authenticated && course.Visibility != models.VisibilityEveryone {
		return ErrSignInRequired
	}
	return nil
}

// VisibleCourses is the catalog scope: the predicate pushed into the query so
// rows a viewer may not see are never fetched, let alone filtered in memory.
// Soft-deleted courses are already excluded by gorm.
func VisibleCourses(authenticated bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("published = ?", true)
		if !authenticated {
			db = db.Where("visibility = ?", models.VisibilityEveryone)
		}
		return db
	}
}
