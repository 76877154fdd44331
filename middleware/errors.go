package middleware

import (
	"errors"

	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps workflow errors to HTTP status codes while
// keeping the {success, message} body the clients already parse.
func ServiceErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Record not found", nil)
	case errors.Is(err, services.ErrAlreadyProcessed):
		return JsonResponse(c, fiber.StatusConflict, false, "Request already processed", nil)
	case errors.Is(err, services.ErrUnauthorized):
		return JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized: resource does not belong to you", nil)
	case errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "You may not perform this action", nil)
	case errors.Is(err, services.ErrConflict):
		return JsonResponse(c, fiber.StatusConflict, false, "This time slot is no longer available. Please select another slot.", nil)
	case errors.Is(err, services.ErrInvalidState):
		return JsonResponse(c, fiber.StatusConflict, false, "Invalid state for this action", nil)
	case errors.Is(err, services.ErrInvalidAction):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action", nil)
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course.", nil)
	case errors.Is(err, services.ErrDuplicatePending):
		return JsonResponse(c, fiber.StatusConflict, false, "You already have a pending enrollment for this course.", nil)
	case errors.Is(err, services.ErrUnknownSlot):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Unknown time slot", nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}
