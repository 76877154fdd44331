package educatorController

import (
	"encoding/json"
	"math"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// UpdateRoleToEducator promotes the caller so they can publish courses.
func UpdateRoleToEducator(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	res := database.Database.Db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", models.RoleEducator)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User Not Found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You can publish a course now", nil)
}

// AddCourse creates a course owned by the caller, uploading the thumbnail
// first.
func AddCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	reqData := c.Locals("validatedCourse").(*courseValidator.AddCourseRequest)

	thumbnail, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail Not Attached", nil)
	}

	thumbnailURL, err := utils.UploadImage(thumbnail, "course_thumbnails")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload thumbnail!", nil)
	}

	content, err := json.Marshal(reqData.CourseContent)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course content!", nil)
	}

	course := models.Course{
		CourseTitle:       reqData.CourseTitle,
		CourseDescription: reqData.CourseDescription,
		CourseThumbnail:   thumbnailURL,
		Price:             reqData.Price,
		Discount:          reqData.Discount,
		IsPublished:       reqData.IsPublished,
		EducatorID:        educatorID,
		CourseContent:     datatypes.JSON(content),
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Added", nil)
}

// GetEducatorCourses lists all the caller's courses.
func GetEducatorCourses(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	var courses []models.Course
	if err := database.Database.Db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return c.JSON(fiber.Map{"success": true, "courses": courses})
}

// ToggleCourseStatus publishes or unpublishes one of the caller's courses.
func ToggleCourseStatus(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	reqData := c.Locals("validatedToggle").(*courseValidator.ToggleStatusRequest)

	db := database.Database.Db

	var course models.Course
	err := db.Where("id = ? AND educator_id = ?", reqData.CourseID, educatorID).First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or unauthorized", nil)
	}

	isPublished := *reqData.IsPublished
	if err := db.Model(&course).Update("is_published", isPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully"
	if isPublished {
		message = "Course published successfully"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"course":  fiber.Map{"_id": course.ID, "isPublished": isPublished},
	})
}

// DashboardData aggregates earnings, enrolled students and course count for
// the caller.
func DashboardData(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard data!", nil)
	}

	courseIDs := make([]string, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	var totalEarnings float64
	if len(courseIDs) > 0 {
		var purchases []models.Purchase
		if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
			Find(&purchases).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard data!", nil)
		}
		for _, purchase := range purchases {
			totalEarnings += purchase.Amount
		}
	}

	type studentEntry struct {
		CourseTitle string      `json:"courseTitle"`
		Student     models.User `json:"student"`
	}
	enrolledStudentsData := make([]studentEntry, 0)
	for _, course := range courses {
		var students []models.User
		err := db.Model(&course).Select("id", "name", "image_url").
			Association("EnrolledStudents").Find(&students)
		if err != nil {
			continue
		}
		for _, student := range students {
			enrolledStudentsData = append(enrolledStudentsData, studentEntry{
				CourseTitle: course.CourseTitle,
				Student:     student,
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"dashboardData": fiber.Map{
			"totalEarnings":        totalEarnings,
			"enrolledStudentsData": enrolledStudentsData,
			"totalCourses":         len(courses),
		},
	})
}

// GetEnrolledStudents lists completed purchases against the caller's
// courses with student details.
func GetEnrolledStudents(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courseIDs []string
	if err := db.Model(&models.Course{}).
		Where("educator_id = ?", educatorID).
		Pluck("id", &courseIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
	}

	var purchases []models.Purchase
	if len(courseIDs) > 0 {
		err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
			Preload("User").
			Preload("Course").
			Order("created_at desc").
			Find(&purchases).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
		}
	}

	type enrolledEntry struct {
		Student      models.User `json:"student"`
		CourseTitle  string      `json:"courseTitle"`
		PurchaseDate interface{} `json:"purchaseDate"`
	}
	enrolled := make([]enrolledEntry, 0, len(purchases))
	for _, purchase := range purchases {
		enrolled = append(enrolled, enrolledEntry{
			Student:      purchase.User,
			CourseTitle:  purchase.Course.CourseTitle,
			PurchaseDate: purchase.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"success": true, "enrolledStudents": enrolled})
}

// GetPendingEnrollments pages through requests against the caller's courses.
func GetPendingEnrollments(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	reqData := c.Locals("validatedList").(*enrollmentValidator.ListQuery)

	enrollments, total, err := services.ListEnrollmentsByStatus(
		database.Database.Db,
		educatorID,
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

// ProcessEnrollment applies the approve/reject decision to a request
// against one of the caller's courses.
func ProcessEnrollment(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	enrollmentID := c.Params("enrollmentId")
	reqData := c.Locals("validatedProcess").(*enrollmentValidator.ProcessRequest)

	db := database.Database.Db

	err := services.ProcessEnrollment(db, educatorID, false, enrollmentID, reqData.Action, reqData.RejectionReason)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to process enrollment request!")
	}

	notifyEnrollmentDecision(enrollmentID, reqData.Action)

	if reqData.Action == services.ActionApprove {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment approved successfully", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment rejected successfully", nil)
}

// notifyEnrollmentDecision emails the student after a decision. Failures are
// logged inside the email service; the API response does not wait on them.
func notifyEnrollmentDecision(enrollmentID, action string) {
	db := database.Database.Db

	var pending models.PendingEnrollment
	if err := db.Preload("User").Preload("Course").First(&pending, "id = ?", enrollmentID).Error; err != nil {
		return
	}

	if action == services.ActionApprove {
		utils.SendEnrollmentApprovedEmail(pending.User.Email, pending.User.Name, pending.Course.CourseTitle)
	} else {
		utils.SendEnrollmentRejectedEmail(pending.User.Email, pending.User.Name, pending.Course.CourseTitle, pending.RejectionReason)
	}
}
