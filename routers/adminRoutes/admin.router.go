package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protect, middleware.ProtectAdmin)

	admin.Get("/pending-enrollments", enrollmentValidator.ListEnrollments(), adminController.GetPendingEnrollments)
	admin.Post("/process-enrollment/:enrollmentId", enrollmentValidator.ProcessEnrollment(), adminController.ProcessEnrollment)
}
