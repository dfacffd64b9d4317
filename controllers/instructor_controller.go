package controllers

import (
	"errors"
	"log"
	"strconv"

	"learnhub/config"
	"learnhub/models"
	"learnhub/services"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InstructorController covers course authoring. Every operation here is
// instructor-privileged: the course is loaded and the ownership guard applied
// before any read or write, and a failed guard is rendered as not-found.
type InstructorController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewInstructorController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *InstructorController {
	return &InstructorController{DB: db, Cfg: cfg, Logger: logger}
}

// ownCourse loads the course and asserts the requester owns it.
func (ic *InstructorController) ownCourse(c *fiber.Ctx, courseID int) (*models.Course, error) {
	userID := c.Locals("user_id").(uint)

	var course models.Course
	if err := ic.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	if err := services.RequireOwner(course.InstructorID, userID); err != nil {
		return nil, err
	}
	return &course, nil
}

func (ic *InstructorController) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}

	visibility := models.VisibilityEveryone
	if input.Visibility == string(models.VisibilitySignedIn) {
		visibility = models.VisibilitySignedIn
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		InstructorID: userID,
		Visibility:   visibility,
	}
	if err := ic.DB.Create(&course).Error; err != nil {
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Created(c, fiber.Map{"id": course.ID, "title": course.Title})
}

func (ic *InstructorController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, err := ic.ownCourse(c, courseID)
	if err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	switch input.Visibility {
	case string(models.VisibilityEveryone):
		course.Visibility = models.VisibilityEveryone
	case string(models.VisibilitySignedIn):
		course.Visibility = models.VisibilitySignedIn
	}

	if err := ic.DB.Save(course).Error; err != nil {
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": course.ID, "title": course.Title})
}

func (ic *InstructorController) PublishCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, err := ic.ownCourse(c, courseID)
	if err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	// A bare POST publishes; a body may override with published: false.
	var input struct {
		Published *bool `json:"published"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}
	if err := ic.DB.Model(course).Update("published", published).Error; err != nil {
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": course.ID, "published": published})
}

// DeleteCourse soft-deletes: the row stays but is no longer discoverable by
// anyone, owner included.
func (ic *InstructorController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, err := ic.ownCourse(c, courseID)
	if err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	if err := ic.DB.Delete(course).Error; err != nil {
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (ic *InstructorController) AddContent(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, err := ic.ownCourse(c, courseID)
	if err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	var input struct {
		Title  string `json:"title"`
		Body   string `json:"body"`
		Hidden bool   `json:"hidden"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}

	// Next position in the course's ordering.
	var count int64
	if err := ic.DB.Model(&models.CourseContent{}).
		Where("course_id = ?", course.ID).
		Count(&count).Error; err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	content := models.CourseContent{
		CourseID: course.ID,
		Position: int(count) + 1,
		Title:    input.Title,
		Body:     input.Body,
		Hidden:   input.Hidden,
	}
	if err := ic.DB.Create(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Position already taken")
		}
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Created(c, fiber.Map{"id": content.ID, "position": content.Position})
}

func (ic *InstructorController) UpdateContent(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	contentID, err := strconv.Atoi(c.Params("contentID"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}
	course, err := ic.ownCourse(c, courseID)
	if err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	var content models.CourseContent
	if err := ic.DB.Where("id = ? AND course_id = ?", contentID, course.ID).
		First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Not found")
		}
		return renderServiceError(c, ic.Logger, err)
	}

	var input struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Position int    `json:"position"`
		Hidden   *bool  `json:"hidden"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		content.Title = input.Title
	}
	if input.Body != "" {
		content.Body = input.Body
	}
	if input.Position > 0 {
		content.Position = input.Position
	}
	if input.Hidden != nil {
		content.Hidden = *input.Hidden
	}

	if err := ic.DB.Save(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Position already taken")
		}
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": content.ID, "position": content.Position})
}

// CreateQuiz attaches a quiz with its full question set to a content item the
// requester owns. One quiz per content.
func (ic *InstructorController) CreateQuiz(c *fiber.Ctx) error {
	contentID, err := strconv.Atoi(c.Params("contentID"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var content models.CourseContent
	if err := ic.DB.First(&content, contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Not found")
		}
		return renderServiceError(c, ic.Logger, err)
	}
	if _, err := ic.ownCourse(c, int(content.CourseID)); err != nil {
		return renderServiceError(c, ic.Logger, err)
	}

	var input struct {
		Questions []struct {
			Prompt  string `json:"prompt"`
			Answers []struct {
				Text    string `json:"text"`
				Correct bool   `json:"correct"`
			} `json:"answers"`
		} `json:"questions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if len(input.Questions) == 0 {
		return utils.BadRequest(c, "at least one question is required")
	}
	for _, q := range input.Questions {
		correct := 0
		for _, a := range q.Answers {
			if a.Correct {
				correct++
			}
		}
		if q.Prompt == "" || len(q.Answers) == 0 || correct == 0 {
			return utils.BadRequest(c, "each question needs a prompt, answers and at least one correct answer")
		}
	}

	quiz := models.Quiz{ContentID: content.ID}
	for i, q := range input.Questions {
		question := models.QuizQuestion{Position: i + 1, Prompt: q.Prompt}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, models.QuizAnswer{
				Text:    a.Text,
				Correct: a.Correct,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := ic.DB.Create(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "Content already has a quiz")
		}
		return renderServiceError(c, ic.Logger, err)
	}
	return utils.Created(c, fiber.Map{"id": quiz.ID, "content_id": quiz.ContentID})
}
