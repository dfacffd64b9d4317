package models

import "gorm.io/gorm"

type Quiz struct {
	gorm.Model
	ContentID uint `gorm:"uniqueIndex;not null"` // 1:1 with a CourseContent
	Questions []QuizQuestion
}

type QuizQuestion struct {
	gorm.Model
	QuizID   uint   `gorm:"index;not null"`
	Position int    `gorm:"not null"`
	Prompt   string `gorm:"not null"`
	Answers  []QuizAnswer
}

type QuizAnswer struct {
	gorm.Model
	QuizQuestionID uint   `gorm:"index;not null"`
	Text           string `gorm:"not null"`
	Correct        bool   `gorm:"default:false"`
}

// CorrectAnswerIDs returns the ids of the answers marked correct, the set a
// submission must match exactly to score the question.
func (q QuizQuestion) CorrectAnswerIDs() []uint {
	var ids []uint
	for _, a := range q.Answers {
		if a.Correct {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
