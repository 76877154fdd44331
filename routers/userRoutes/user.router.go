package userRoutes

import (
	userController "lms/controllers/user"
	"lms/middleware"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	user := app.Group("/api/user", middleware.Protect)

	// QR code payment enrollment
	user.Post("/enroll-qr", enrollmentValidator.SubmitEnrollment(), userController.SubmitQRPaymentEnrollment)
	user.Get("/enrollment-status/:courseId", userController.CheckEnrollmentStatus)
	user.Get("/my-pending-enrollments", userController.GetMyPendingEnrollments)
	user.Delete("/remove-rejected-enrollment/:enrollmentId", userController.RemoveRejectedEnrollment)

	user.Get("/data", userController.GetUserData)
	user.Post("/purchase", courseValidator.Purchase(), userController.PurchaseCourse)
	user.Get("/enrolled-courses", userController.GetEnrolledCourses)
	user.Post("/update-course-progress", courseValidator.UpdateProgress(), userController.UpdateCourseProgress)
	user.Post("/get-course-progress", userController.GetCourseProgress)
	user.Post("/add-rating", courseValidator.AddRating(), userController.AddRating)
}
