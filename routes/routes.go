package routes

import (
	"log"

	"learnhub/config"
	"learnhub/controllers"
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorMiddleware := middleware.RequireRole(db, cfg, "instructor", "admin")
	adminMiddleware := middleware.RequireRole(db, cfg, "admin")

	// Course routes. Catalog and detail take anonymous viewers; the
	// visibility filter decides what they see.
	coursesController := controllers.NewCoursesController(db, cfg, logger)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetCatalog)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", authMiddleware, coursesController.Enroll)
	courses.Get("/:id/status", authMiddleware, coursesController.GetEnrollmentStatus)
	courses.Post("/:id/complete", authMiddleware, coursesController.MarkCompleted)

	// Quiz routes
	quizzesController := controllers.NewQuizzesController(db, cfg, logger)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Get("/:id/attempts", quizzesController.GetAttempts)
	quizzes.Post("/:id/attempts", quizzesController.SubmitAttempt)

	// Instructor routes
	instructorController := controllers.NewInstructorController(db, cfg, logger)
	instructor := app.Group("/api/instructor", instructorMiddleware)
	instructor.Post("/courses", instructorController.CreateCourse)
	instructor.Put("/courses/:id", instructorController.UpdateCourse)
	instructor.Post("/courses/:id/publish", instructorController.PublishCourse)
	instructor.Delete("/courses/:id", instructorController.DeleteCourse)
	instructor.Post("/courses/:id/contents", instructorController.AddContent)
	instructor.Put("/courses/:id/contents/:contentID", instructorController.UpdateContent)
	instructor.Post("/contents/:contentID/quiz", instructorController.CreateQuiz)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg, logger)
	instructor.Get("/analytics", analyticsController.InstructorDashboard)
	app.Get("/api/admin/analytics", adminMiddleware, analyticsController.AdminDashboard)
}
