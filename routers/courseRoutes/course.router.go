package courseRoutes

import (
	courseController "lms/controllers/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	course := app.Group("/api/course")

	course.Get("/all", courseController.GetAllCourses)
	course.Get("/:id", courseController.GetCourseByID)
}
