package educatorRoutes

import (
	educatorController "lms/controllers/educator"
	"lms/middleware"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEducatorRoutes(app *fiber.App) {
	educator := app.Group("/api/educator", middleware.Protect)

	educator.Get("/update-role", educatorController.UpdateRoleToEducator)

	educator.Post("/add-course", middleware.ProtectEducator, courseValidator.AddCourse(), educatorController.AddCourse)
	educator.Get("/courses", middleware.ProtectEducator, educatorController.GetEducatorCourses)
	educator.Patch("/toggle-course-status", middleware.ProtectEducator, courseValidator.ToggleStatus(), educatorController.ToggleCourseStatus)
	educator.Get("/dashboard", middleware.ProtectEducator, educatorController.DashboardData)
	educator.Get("/enrolled-students", middleware.ProtectEducator, educatorController.GetEnrolledStudents)

	// Pending enrollment review queue
	educator.Get("/pending-enrollments", middleware.ProtectEducator, enrollmentValidator.ListEnrollments(), educatorController.GetPendingEnrollments)
	educator.Post("/process-enrollment/:enrollmentId", middleware.ProtectEducator, enrollmentValidator.ProcessEnrollment(), educatorController.ProcessEnrollment)
}
