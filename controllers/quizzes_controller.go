package controllers

import (
	"log"
	"strconv"

	"learnhub/config"
	"learnhub/services"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizzesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Logger   *log.Logger
	Attempts *services.AttemptService
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *QuizzesController {
	return &QuizzesController{
		DB:       db,
		Cfg:      cfg,
		Logger:   logger,
		Attempts: services.NewAttemptService(db, services.NewEnrollmentService(db)),
	}
}

// GetQuiz serves the quiz form: prompts and answer options carrying the ids
// a submission references. Which answers are correct never leaves the server.
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	userID := c.Locals("user_id").(uint)

	quiz, err := qc.Attempts.Quiz(userID, uint(quizID))
	if err != nil {
		return renderServiceError(c, qc.Logger, err)
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers := make([]fiber.Map, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, fiber.Map{"id": a.ID, "text": a.Text})
		}
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"position": q.Position,
			"prompt":   q.Prompt,
			"answers":  answers,
		})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":        quiz.ID,
		"questions": questions,
	})
}

// GetAttempts returns the caller's attempt history for a quiz, newest first.
func (qc *QuizzesController) GetAttempts(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	userID := c.Locals("user_id").(uint)

	attempts, err := qc.Attempts.PreviousAttempts(userID, uint(quizID))
	if err != nil {
		return renderServiceError(c, qc.Logger, err)
	}

	result := make([]fiber.Map, 0, len(attempts))
	for _, attempt := range attempts {
		result = append(result, fiber.Map{
			"attempt_number": attempt.AttemptNumber,
			"score":          attempt.Score,
			"submitted_at":   attempt.SubmittedAt,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// SubmitAttempt records a new, immutable attempt and returns its number and
// score.
func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}
	userID := c.Locals("user_id").(uint)

	var input struct {
		Answers []struct {
			QuestionID uint   `json:"question_id"`
			AnswerIDs  []uint `json:"answer_ids"`
		} `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	answers := services.SubmittedAnswers{}
	for _, a := range input.Answers {
		answers[a.QuestionID] = a.AnswerIDs
	}

	attempt, err := qc.Attempts.SubmitAttempt(userID, uint(quizID), answers)
	if err != nil {
		return renderServiceError(c, qc.Logger, err)
	}

	return utils.Created(c, fiber.Map{
		"attempt_number": attempt.AttemptNumber,
		"score":          attempt.Score,
		"submitted_at":   attempt.SubmittedAt,
	})
}
