package services

import (
	"testing"

	"learnhub/models"
	"learnhub/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. TranslateError mirrors
// the production connection: duplicate-key detection depends on it.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, published bool, visibility models.Visibility) models.Course {
	t.Helper()

	course := models.Course{
		Title:        "Course",
		InstructorID: instructorID,
		Published:    published,
		Visibility:   visibility,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

// seedQuiz creates a content item with an attached quiz. Each question gets
// three answers with only the first marked correct.
func seedQuiz(t *testing.T, db *gorm.DB, courseID uint, questions int) models.Quiz {
	t.Helper()

	content := models.CourseContent{
		CourseID: courseID,
		Position: 1,
		Title:    "Quiz content",
	}
	require.NoError(t, db.Create(&content).Error)

	quiz := models.Quiz{ContentID: content.ID}
	for i := 0; i < questions; i++ {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Position: i + 1,
			Prompt:   "Question",
			Answers: []models.QuizAnswer{
				{Text: "right", Correct: true},
				{Text: "wrong", Correct: false},
				{Text: "also wrong", Correct: false},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)

	var loaded models.Quiz
	require.NoError(t, db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Questions.Answers").First(&loaded, quiz.ID).Error)
	return loaded
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error)
}

// correctSubmission builds the fully correct answer set for a quiz.
func correctSubmission(quiz models.Quiz) SubmittedAnswers {
	answers := SubmittedAnswers{}
	for _, q := range quiz.Questions {
		answers[q.ID] = q.CorrectAnswerIDs()
	}
	return answers
}
