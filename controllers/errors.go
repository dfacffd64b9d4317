package controllers

import (
	"errors"
	"log"

	"learnhub/services"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// renderServiceError maps the core's typed outcomes to responses. Visibility
// and ownership failures are deliberately indistinguishable from not-found;
// anything unexpected is logged with context and hidden behind a generic 500.
func renderServiceError(c *fiber.Ctx, logger *log.Logger, err error) error {
	var ve *services.ValidationError

	switch {
	case errors.Is(err, services.ErrCourseNotVisible),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, "Not found")
	case errors.Is(err, services.ErrSignInRequired):
		return utils.Redirect(c, fiber.StatusUnauthorized, "Sign in to view this course", "/login")
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return utils.Conflict(c, "Already enrolled")
	case errors.Is(err, services.ErrNotEnrolled):
		return utils.Redirect(c, fiber.StatusForbidden, "Enroll in the course first", "/courses")
	case errors.As(err, &ve):
		return utils.UnprocessableEntity(c, ve.Error())
	default:
		logger.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return utils.InternalServerError(c, "Something went wrong")
	}
}
