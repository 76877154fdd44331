package userController

import (
	"encoding/json"
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserData returns the caller's mirrored account.
func GetUserData(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	var user models.User
	if err := database.Database.Db.First(&user, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User Not Found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// GetEnrolledCourses lists the caller's enrolled courses.
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	var user models.User
	err := database.Database.Db.Preload("EnrolledCourses").First(&user, "id = ?", userID).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User Not Found", nil)
	}

	return c.JSON(fiber.Map{"success": true, "courses": user.EnrolledCourses})
}

// AddRating upserts the caller's 1-5 rating for a course.
func AddRating(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedRating").(*courseValidator.RatingRequest)

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course Not Found", nil)
	}

	rating := models.CourseRating{
		CourseID: reqData.CourseID,
		UserID:   userID,
		Rating:   reqData.Rating,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating Added", nil)
}

// UpdateCourseProgress marks one lecture as completed in the caller's
// progress matrix.
func UpdateCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)

	db := database.Database.Db
	chapterIndex := *reqData.ChapterIndex
	lessonIndex := *reqData.LessonIndex

	var progress models.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&progress).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	var chapters [][]bool
	if len(progress.Progress) > 0 {
		if err := json.Unmarshal(progress.Progress, &chapters); err != nil {
			chapters = nil
		}
	}

	for len(chapters) <= chapterIndex {
		chapters = append(chapters, []bool{})
	}
	for len(chapters[chapterIndex]) <= lessonIndex {
		chapters[chapterIndex] = append(chapters[chapterIndex], false)
	}
	chapters[chapterIndex][lessonIndex] = true

	encoded, err := json.Marshal(chapters)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	progress.UserID = userID
	progress.CourseID = reqData.CourseID
	progress.Progress = datatypes.JSON(encoded)

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Progress Updated", nil)
}

// GetCourseProgress returns the caller's progress matrix for one course.
func GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData := new(struct {
		CourseID string `json:"courseId"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.CourseID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	var progress models.CourseProgress
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"success": true, "courseProgress": nil})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	return c.JSON(fiber.Map{"success": true, "courseProgress": progress})
}
