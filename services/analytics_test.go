package services

import (
	"testing"

	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateZeroEnrollments(t *testing.T) {
	db := testDB(t)
	instructor := seedUser(t, db, "teach", "instructor")
	course := seedCourse(t, db, instructor.ID, true, models.VisibilityEveryone)

	svc := NewAnalyticsService(db, NewMarkerCompletionSource(db))

	metrics, err := svc.Aggregate(Scope{InstructorID: instructor.ID})
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, course.ID, metrics[0].CourseID)
	assert.EqualValues(t, 0, metrics[0].TotalEnrollments)
	assert.EqualValues(t, 0, metrics[0].Completed)
	assert.EqualValues(t, 0, metrics[0].DropOff)
	// Division-by-zero guard: the rate is 0, not NaN or an error.
	assert.Equal(t, 0, metrics[0].CompletionRate)
}

func TestAggregateScopedToInstructor(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice", "instructor")
	bob := seedUser(t, db, "bob", "instructor")
	l1 := seedUser(t, db, "l1", "learner")
	l2 := seedUser(t, db, "l2", "learner")

	aliceCourse := seedCourse(t, db, alice.ID, true, models.VisibilityEveryone)
	bobCourse := seedCourse(t, db, bob.ID, true, models.VisibilityEveryone)

	enroll(t, db, l1.ID, aliceCourse.ID)
	enroll(t, db, l2.ID, aliceCourse.ID)
	enroll(t, db, l1.ID, bobCourse.ID)

	completions := NewMarkerCompletionSource(db)
	require.NoError(t, completions.MarkCompleted(l1.ID, aliceCourse.ID))

	svc := NewAnalyticsService(db, completions)

	metrics, err := svc.Aggregate(Scope{InstructorID: alice.ID})
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, aliceCourse.ID, metrics[0].CourseID)
	assert.EqualValues(t, 2, metrics[0].TotalEnrollments)
	assert.EqualValues(t, 1, metrics[0].Completed)
	assert.EqualValues(t, 1, metrics[0].DropOff)
	assert.Equal(t, 50, metrics[0].CompletionRate)
}

func TestAggregateAllCourses(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice", "instructor")
	bob := seedUser(t, db, "bob", "instructor")
	seedCourse(t, db, alice.ID, true, models.VisibilityEveryone)
	seedCourse(t, db, bob.ID, false, models.VisibilityEveryone)

	svc := NewAnalyticsService(db, NewMarkerCompletionSource(db))

	metrics, err := svc.Aggregate(Scope{})
	require.NoError(t, err)
	assert.Len(t, metrics, 2)
}

func TestAggregateEmptyScope(t *testing.T) {
	db := testDB(t)
	nobody := seedUser(t, db, "nobody", "instructor")

	svc := NewAnalyticsService(db, NewMarkerCompletionSource(db))

	metrics, err := svc.Aggregate(Scope{InstructorID: nobody.ID})
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
}

func TestAggregateExcludesDeletedCourses(t *testing.T) {
	db := testDB(t)
	instructor := seedUser(t, db, "teach", "instructor")
	course := seedCourse(t, db, instructor.ID, true, models.VisibilityEveryone)
	require.NoError(t, db.Delete(&course).Error)

	svc := NewAnalyticsService(db, NewMarkerCompletionSource(db))

	metrics, err := svc.Aggregate(Scope{InstructorID: instructor.ID})
	require.NoError(t, err)
	assert.Empty(t, metrics)
}

func TestMarkCompleted(t *testing.T) {
	db := testDB(t)
	instructor := seedUser(t, db, "teach", "instructor")
	learner := seedUser(t, db, "learner", "learner")
	course := seedCourse(t, db, instructor.ID, true, models.VisibilityEveryone)

	completions := NewMarkerCompletionSource(db)

	// Completion requires an enrollment.
	assert.ErrorIs(t, completions.MarkCompleted(learner.ID, course.ID), ErrNotEnrolled)

	enroll(t, db, learner.ID, course.ID)
	require.NoError(t, completions.MarkCompleted(learner.ID, course.ID))
	// Idempotent.
	require.NoError(t, completions.MarkCompleted(learner.ID, course.ID))

	count, err := completions.CompletedCount(course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	done, err := completions.Completed(learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, done)
}
