package userController

import (
	"fmt"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitQRPaymentEnrollment records a manual payment claim: the student
// uploads a bank-transfer screenshot and a transaction id, and the request
// waits for educator/admin review.
func SubmitQRPaymentEnrollment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	courseID := strings.TrimSpace(c.FormValue("courseId"))
	transactionID := c.FormValue("transactionId")

	screenshot, err := c.FormFile("screenshot")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment screenshot is required. Please select a file.", nil)
	}

	screenshotURL, err := utils.UploadImage(screenshot, "payment_screenshots")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload image. Please try again.", nil)
	}

	pending, err := services.SubmitEnrollment(database.Database.Db, userID, courseID, screenshotURL, transactionID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to submit enrollment request!")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Enrollment request submitted successfully. Please wait for approval.",
		"enrollmentId": pending.ID,
	})
}

// CheckEnrollmentStatus returns the caller's most recent request for a
// course.
func CheckEnrollmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	courseID := c.Params("courseId")

	pending, err := services.LatestEnrollment(database.Database.Db, userID, courseID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch enrollment status!")
	}

	return c.JSON(fiber.Map{"success": true, "enrollment": pending})
}

// GetMyPendingEnrollments lists all the caller's requests, newest first.
func GetMyPendingEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	enrollments, err := services.ListUserEnrollments(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return c.JSON(fiber.Map{"success": true, "enrollments": enrollments})
}

// RemoveRejectedEnrollment lets a student clear their own rejected request.
func RemoveRejectedEnrollment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	enrollmentID := c.Params("enrollmentId")

	if err := services.RemoveRejected(database.Database.Db, userID, enrollmentID); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to remove enrollment request!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request removed successfully!", nil)
}

// PurchaseCourse starts the card checkout path: a pending Purchase row plus
// a hosted checkout session; the webhook completes the enrollment.
func PurchaseCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedPurchase").(*courseValidator.PurchaseRequest)

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, "id = ?", reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Data Not Found", nil)
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Data Not Found", nil)
	}

	amount := course.Price - (course.Discount * course.Price / 100)

	purchase := models.Purchase{
		UserID:        userID,
		CourseID:      course.ID,
		Amount:        amount,
		Status:        models.PurchasePending,
		PaymentMethod: "stripe",
	}
	if err := db.Create(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	origin := c.Get("Origin")
	session, err := utils.CreateCheckoutSession(
		course.CourseTitle,
		amount,
		fmt.Sprintf("%s/my-enrollments", origin),
		fmt.Sprintf("%s/course/%s", origin, course.ID),
		map[string]string{
			"userId":     userID,
			"courseId":   course.ID,
			"purchaseId": purchase.ID,
		},
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	// Remember the session so the webhook can be cross-checked.
	db.Model(&models.Purchase{}).Where("id = ?", purchase.ID).
		Update("stripe_session_id", session.ID)

	return c.JSON(fiber.Map{"success": true, "sessionUrl": session.URL})
}
