package controllers

import (
	"log"

	"learnhub/config"
	"learnhub/services"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Logger    *log.Logger
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{
		DB:        db,
		Cfg:       cfg,
		Logger:    logger,
		Analytics: services.NewAnalyticsService(db, services.NewMarkerCompletionSource(db)),
	}
}

// InstructorDashboard aggregates metrics for the requester's own courses.
// The scope restriction happens in the aggregation query, so no numbers for
// other instructors' courses are ever computed.
func (ac *AnalyticsController) InstructorDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	metrics, err := ac.Analytics.Aggregate(services.Scope{InstructorID: userID})
	if err != nil {
		return renderServiceError(c, ac.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, metrics)
}

// AdminDashboard aggregates metrics for every course on the platform.
func (ac *AnalyticsController) AdminDashboard(c *fiber.Ctx) error {
	metrics, err := ac.Analytics.Aggregate(services.Scope{})
	if err != nil {
		return renderServiceError(c, ac.Logger, err)
	}
	return utils.Success(c, fiber.StatusOK, metrics)
}
