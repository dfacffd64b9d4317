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

// CoursesController serves the learner-facing course surface: catalog,
// detail, enrollment and completion. It resolves the request identity and
// hands plain ids to the domain services; no access decision is made here.
type CoursesController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Logger      *log.Logger
	Enrollments *services.EnrollmentService
	Completions *services.MarkerCompletionSource
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *CoursesController {
	return &CoursesController{
		DB:          db,
		Cfg:         cfg,
		Logger:      logger,
		Enrollments: services.NewEnrollmentService(db),
		Completions: services.NewMarkerCompletionSource(db),
	}
}

// GetCatalog lists discoverable courses. Anonymous viewers never receive
// sign-in restricted rows; the filter runs in the query, not in memory.
func (cc *CoursesController) GetCatalog(c *fiber.Ctx) error {
	userID := utils.OptionalUserID(c, cc.Cfg)

	var courses []models.Course
	err := cc.DB.Scopes(services.VisibleCourses(userID != 0)).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return renderServiceError(c, cc.Logger, err)
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"visibility":  course.Visibility,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetCourseDetails serves the course page. The owner sees it through the
// ownership guard regardless of publish state; everyone else goes through the
// visibility gate and a failed gate reads as not-found. Enrolled learners get
// the content listing so the frontend routes them straight to the learning
// view instead of the enroll offer.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	userID := utils.OptionalUserID(c, cc.Cfg)

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Not found")
		}
		return renderServiceError(c, cc.Logger, err)
	}

	isOwner := services.RequireOwner(course.InstructorID, userID) == nil
	if !isOwner {
		if err := services.GateCourse(course, userID != 0); err != nil {
			return renderServiceError(c, cc.Logger, err)
		}
	}

	enrolled, err := cc.Enrollments.Status(userID, course.ID)
	if err != nil {
		return renderServiceError(c, cc.Logger, err)
	}

	detail := fiber.Map{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"visibility":  course.Visibility,
		"enrolled":    enrolled,
	}

	if enrolled || isOwner {
		contentQuery := cc.DB.Where("course_id = ?", course.ID).Order("position ASC")
		if !isOwner {
			// Hidden content stays out of learner-facing listings regardless
			// of enrollment.
			contentQuery = contentQuery.Where("hidden = ?", false)
		}
		var contents []models.CourseContent
		if err := contentQuery.Find(&contents).Error; err != nil {
			return renderServiceError(c, cc.Logger, err)
		}
		items := make([]fiber.Map, 0, len(contents))
		for _, content := range contents {
			items = append(items, fiber.Map{
				"id":       content.ID,
				"position": content.Position,
				"title":    content.Title,
				"body":     content.Body,
			})
		}
		detail["contents"] = items
	}

	return utils.Success(c, fiber.StatusOK, detail)
}

func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	userID := c.Locals("user_id").(uint)

	enrollment, err := cc.Enrollments.Enroll(userID, uint(courseID))
	if err != nil {
		return renderServiceError(c, cc.Logger, err)
	}
	return utils.Created(c, fiber.Map{
		"course_id":   enrollment.CourseID,
		"enrolled_at": enrollment.CreatedAt,
	})
}

func (cc *CoursesController) GetEnrollmentStatus(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	userID := c.Locals("user_id").(uint)

	enrolled, err := cc.Enrollments.Status(userID, uint(courseID))
	if err != nil {
		return renderServiceError(c, cc.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"enrolled": enrolled})
}

// MarkCompleted records the completion signal consumed by analytics.
func (cc *CoursesController) MarkCompleted(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	userID := c.Locals("user_id").(uint)

	if err := cc.Completions.MarkCompleted(userID, uint(courseID)); err != nil {
		return renderServiceError(c, cc.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"completed": true})
}
