package services

import (
	"testing"
	"time"

	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func deletedAt() gorm.DeletedAt {
	return gorm.DeletedAt{Time: time.Now(), Valid: true}
}

func TestCourseVisible(t *testing.T) {
	tests := []struct {
		name          string
		published     bool
		deleted       bool
		visibility    models.Visibility
		authenticated bool
		want          bool
	}{
		{"published everyone anonymous", true, false, models.VisibilityEveryone, false, true},
		{"published everyone signed in", true, false, models.VisibilityEveryone, true, true},
		{"published signed-in anonymous", true, false, models.VisibilitySignedIn, false, false},
		{"published signed-in signed in", true, false, models.VisibilitySignedIn, true, true},
		{"unpublished everyone anonymous", false, false, models.VisibilityEveryone, false, false},
		{"unpublished everyone signed in", false, false, models.VisibilityEveryone, true, false},
		{"unpublished signed-in signed in", false, false, models.VisibilitySignedIn, true, false},
		{"deleted everyone signed in", true, true, models.VisibilityEveryone, true, false},
		{"deleted signed-in anonymous", true, true, models.VisibilitySignedIn, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := models.Course{
				Published:  tt.published,
				Visibility: tt.visibility,
			}
			if tt.deleted {
				course.DeletedAt = deletedAt()
			}
			assert.Equal(t, tt.want, CourseVisible(course, tt.authenticated))
		})
	}
}

func TestGateCourseDistinguishesFailures(t *testing.T) {
	unpublished := models.Course{Published: false, Visibility: models.VisibilityEveryone}
	assert.ErrorIs(t, GateCourse(unpublished, true), ErrCourseNotVisible)

	deleted := models.Course{Model: gorm.Model{DeletedAt: deletedAt()}, Published: true, Visibility: models.VisibilityEveryone}
	assert.ErrorIs(t, GateCourse(deleted, true), ErrCourseNotVisible)

	restricted := models.Course{Published: true, Visibility: models.VisibilitySignedIn}
	assert.ErrorIs(t, GateCourse(restricted, false), ErrSignInRequired)
	assert.NoError(t, GateCourse(restricted, true))

	open := models.Course{Published: true, Visibility: models.VisibilityEveryone}
	assert.NoError(t, GateCourse(open, false))
}

// The catalog scope must keep rows a viewer cannot see out of the result
// entirely, not filter them afterwards.
func TestVisibleCoursesScope(t *testing.T) {
	db := testDB(t)
	instructor := seedUser(t, db, "teach", "instructor")

	public := seedCourse(t, db, instructor.ID, true, models.VisibilityEveryone)
	restricted := seedCourse(t, db, instructor.ID, true, models.VisibilitySignedIn)
	seedCourse(t, db, instructor.ID, false, models.VisibilityEveryone) // unpublished

	deleted := seedCourse(t, db, instructor.ID, true, models.VisibilityEveryone)
	require.NoError(t, db.Delete(&deleted).Error)

	var anonymous []models.Course
	require.NoError(t, db.Scopes(VisibleCourses(false)).Find(&anonymous).Error)
	require.Len(t, anonymous, 1)
	assert.Equal(t, public.ID, anonymous[0].ID)

	var authenticated []models.Course
	require.NoError(t, db.Scopes(VisibleCourses(true)).Find(&authenticated).Error)
	require.Len(t, authenticated, 2)
	ids := []uint{authenticated[0].ID, authenticated[1].ID}
	assert.ElementsMatch(t, []uint{public.ID, restricted.ID}, ids)
}

func TestRequireOwner(t *testing.T) {
	assert.NoError(t, RequireOwner(7, 7))
	assert.ErrorIs(t, RequireOwner(7, 8), ErrNotOwner)
	// Anonymous requesters never own anything.
	assert.ErrorIs(t, RequireOwner(7, 0), ErrNotOwner)
	assert.ErrorIs(t, RequireOwner(0, 0), ErrNotOwner)
}
