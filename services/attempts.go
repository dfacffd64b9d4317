package services

import (
	"encoding/json"
	"errors"
	"math"

	"learnhub/models"

	"gorm.io/gorm"
)

// AttemptService manages quiz attempt creation, numbering, scoring and
// history. Enrollment on the quiz's course is a precondition for every
// operation and is re-checked at submission time, not only at quiz load,
// since sessions can be long-lived.
type AttemptService struct {
	DB          *gorm.DB
	Enrollments *EnrollmentService
}

func NewAttemptService(db *gorm.DB, enrollments *EnrollmentService) *AttemptService {
	return &AttemptService{DB: db, Enrollments: enrollments}
}

// SubmittedAnswers maps a question id to the set of answer ids the learner
// selected for it.
type SubmittedAnswers map[uint][]uint

// Quiz returns the quiz with its ordered questions and answer options for an
// enrolled learner, the ids a submission references. Correctness flags are
// for the scorer; callers serving learners must not expose them.
func (s *AttemptService) Quiz(userID, quizID uint) (*models.Quiz, error) {
	return s.loadQuizForUser(userID, quizID)
}

// PreviousAttempts returns the user's attempt history for a quiz, newest
// first. Re-invocable with consistent results absent new submissions.
func (s *AttemptService) PreviousAttempts(userID, quizID uint) ([]models.QuizAttempt, error) {
	if _, err := s.loadQuizForUser(userID, quizID); err != nil {
		return nil, err
	}

	var attempts []models.QuizAttempt
	err := s.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("attempt_number DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// SubmitAttempt validates and scores a submission, then persists it as the
// next numbered attempt. The record is immutable once written.
func (s *AttemptService) SubmitAttempt(userID, quizID uint, answers SubmittedAnswers) (*models.QuizAttempt, error) {
	quiz, err := s.loadQuizForUser(userID, quizID)
	if err != nil {
		return nil, err
	}

	score, err := scoreSubmission(quiz, answers)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := models.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		AnswersJSON: string(raw),
		Score:       score,
	}

	// Count-then-insert runs inside a transaction, but the unique index on
	// (quiz_id, user_id, attempt_number) is the real guarantee: if two
	// submissions race to the same number, one insert fails and is retried
	// against the updated count.
	for try := 0; ; try++ {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			var prior int64
			if err := tx.Model(&models.QuizAttempt{}).
				Where("quiz_id = ? AND user_id = ?", quizID, userID).
				Count(&prior).Error; err != nil {
				return err
			}
			attempt.ID = 0
			attempt.AttemptNumber = int(prior) + 1
			return tx.Create(&attempt).Error
		})
		if err == nil {
			return &attempt, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || try >= 2 {
			return nil, err
		}
	}
}

// loadQuizForUser resolves the quiz with its full question set and enforces
// the enrollment precondition on the owning course.
func (s *AttemptService) loadQuizForUser(userID, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Questions.Answers").First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var content models.CourseContent
	if err := s.DB.First(&content, quiz.ContentID).Error; err != nil {
		return nil, err
	}

	enrolled, err := s.Enrollments.Status(userID, content.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}
	return &quiz, nil
}

// scoreSubmission compares each submitted answer set against the set of ids
// marked correct. A question scores only on an exact set match; there is no
// partial credit. The overall score is the percentage of fully correct
// questions, rounded to the nearest integer.
func scoreSubmission(quiz *models.Quiz, answers SubmittedAnswers) (int, error) {
	questions := make(map[uint]models.QuizQuestion, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}

	for questionID, answerIDs := range answers {
		question, ok := questions[questionID]
		if !ok {
			return 0, NewValidationError("question_id", "unknown question for this quiz")
		}
		known := make(map[uint]bool, len(question.Answers))
		for _, a := range question.Answers {
			known[a.ID] = true
		}
		for _, id := range answerIDs {
			if !known[id] {
				return 0, NewValidationError("answer_id", "unknown answer for this question")
			}
		}
	}

	if len(quiz.Questions) == 0 {
		return 0, nil
	}

	correct := 0
	for _, q := range quiz.Questions {
		if equalIDSets(answers[q.ID], q.CorrectAnswerIDs()) {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(quiz.Questions)) * 100)), nil
}

// equalIDSets compares two id slices as sets, order-insensitive.
func equalIDSets(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[uint]int{}
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
