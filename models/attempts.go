package models

import "time"

// QuizAttempt is one immutable, numbered submission of answers to a quiz.
// Attempts are append-only: they are never edited or removed, and the
// composite unique index on (quiz_id, user_id, attempt_number) rules out
// duplicate numbers under concurrent submission.
type QuizAttempt struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	QuizID        uint      `gorm:"uniqueIndex:idx_quiz_user_attempt;not null" json:"quiz_id"`
	UserID        uint      `gorm:"uniqueIndex:idx_quiz_user_attempt;not null" json:"user_id"`
	AttemptNumber int       `gorm:"uniqueIndex:idx_quiz_user_attempt;not null" json:"attempt_number"`
	AnswersJSON   string    `gorm:"type:text" json:"-"`
	Score         int       `json:"score"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
