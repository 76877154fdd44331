package courseController

import (
	"encoding/json"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetAllCourses lists published courses for the catalog. Content tree and
// enrollment lists are stripped; ratings ride along for the summary stars.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	err := database.Database.Db.
		Omit("CourseContent").
		Where("is_published = ?", true).
		Preload("CourseRatings").
		Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return c.JSON(fiber.Map{"success": true, "courses": courses})
}

// GetCourseByID returns one course with its content tree. Lecture URLs are
// blanked unless the lecture is marked free preview; enrolled students get
// the full tree through their own enrollment checks client-side.
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	err := database.Database.Db.Preload("CourseRatings").First(&course, "id = ?", courseID).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course Not Found", nil)
	}

	if len(course.CourseContent) > 0 {
		var chapters []models.Chapter
		if err := json.Unmarshal(course.CourseContent, &chapters); err == nil {
			for ci := range chapters {
				for li := range chapters[ci].ChapterContent {
					if !chapters[ci].ChapterContent[li].IsPreviewFree {
						chapters[ci].ChapterContent[li].LectureURL = ""
					}
				}
			}
			if redacted, err := json.Marshal(chapters); err == nil {
				course.CourseContent = datatypes.JSON(redacted)
			}
		}
	}

	return c.JSON(fiber.Map{"success": true, "courseData": course})
}
