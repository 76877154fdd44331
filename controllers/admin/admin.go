package adminController

import (
	"math"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// GetPendingEnrollments pages through requests platform-wide.
func GetPendingEnrollments(c *fiber.Ctx) error {
	reqData := c.Locals("validatedList").(*enrollmentValidator.ListQuery)

	enrollments, total, err := services.ListEnrollmentsByStatus(
		database.Database.Db,
		"", // admins see every course
		models.EnrollmentStatus(reqData.Status),
		reqData.Page,
		reqData.Limit,
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"enrollments": enrollments,
		"totalPages":  int(math.Ceil(float64(total) / float64(reqData.Limit))),
		"currentPage": reqData.Page,
	})
}

// ProcessEnrollment applies the approve/reject decision without the course
// ownership restriction.
func ProcessEnrollment(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(string)
	enrollmentID := c.Params("enrollmentId")
	reqData := c.Locals("validatedProcess").(*enrollmentValidator.ProcessRequest)

	err := services.ProcessEnrollment(database.Database.Db, adminID, true, enrollmentID, reqData.Action, reqData.RejectionReason)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to process enrollment request!")
	}

	if reqData.Action == services.ActionApprove {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment approved successfully", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment rejected successfully", nil)
}
