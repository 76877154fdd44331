package bookingController

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"
	bookingValidator "lms/validators/booking"

	"github.com/gofiber/fiber/v2"
)

// GetPendingBookings lists the educator's unprocessed consultation requests.
func GetPendingBookings(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	bookings, err := services.ListPendingBookings(database.Database.Db, educatorID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching pending bookings", nil)
	}

	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

// ProcessBooking accepts or declines a pending booking.
func ProcessBooking(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	bookingID := c.Params("bookingId")
	reqData := c.Locals("validatedProcessBooking").(*bookingValidator.ProcessBookingRequest)

	err := services.ProcessBooking(database.Database.Db, educatorID, bookingID, reqData.Action, reqData.Notes)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Error processing booking request")
	}

	notifyBookingDecision(bookingID, reqData.Action)

	if reqData.Action == services.BookingActionAccept {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking accepted successfully", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking declined successfully", nil)
}

// ManageTimeSlot blocks or unblocks one calendar slot.
func ManageTimeSlot(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	reqData := c.Locals("validatedManageSlot").(*bookingValidator.ManageSlotRequest)

	blocked := *reqData.IsBlocked
	err := services.ManageTimeSlot(database.Database.Db, educatorID, reqData.ParsedDate, reqData.TimeSlot, blocked, reqData.BlockReason)
	if err != nil {
		if err == services.ErrConflict {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot block slot - already has a booking", nil)
		}
		return middleware.ServiceErrorResponse(c, err, "Error managing time slot")
	}

	if blocked {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot blocked successfully", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot unblocked successfully", nil)
}

// GetEducatorSchedule lists slot rows with their bookings, optionally range
// bounded.
func GetEducatorSchedule(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	query := c.Locals("validatedScheduleRange").(*bookingValidator.ScheduleQuery)

	slots, err := services.EducatorSchedule(database.Database.Db, educatorID, query.StartDate, query.EndDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching schedule", nil)
	}

	return c.JSON(fiber.Map{"success": true, "schedule": slots})
}

// GetAvailableSlots is the public availability view for one date.
func GetAvailableSlots(c *fiber.Ctx) error {
	date := c.Locals("validatedDate").(time.Time)

	available, occupied, err := services.AvailableSlots(database.Database.Db, date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching available slots", nil)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"availableSlots": available,
		"bookedSlots":    occupied,
	})
}

// CreateWebsiteBooking takes an unauthenticated consultation request from
// the public site, with an optional payment screenshot.
func CreateWebsiteBooking(c *fiber.Ctx) error {
	reqData := c.Locals("validatedWebsiteBooking").(*bookingValidator.WebsiteBookingRequest)

	screenshotURL := ""
	if screenshot, err := c.FormFile("screenshot"); err == nil {
		url, err := utils.UploadImage(screenshot, "website_payment_screenshots")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error uploading payment screenshot", nil)
		}
		screenshotURL = url
	}

	booking, err := services.CreateWebsiteBooking(database.Database.Db, config.AppConfig.DefaultEducatorID, services.WebsiteBookingInput{
		ServiceType:    reqData.ServiceType,
		SelectedDate:   reqData.SelectedDate,
		SelectedTime:   reqData.SelectedTime,
		Duration:       reqData.Duration,
		Amount:         reqData.Amount,
		TransactionID:  reqData.TransactionID,
		WhatsappNumber: reqData.WhatsappNumber,
		Email:          reqData.Email,
		CustomerName:   reqData.CustomerName,
		ScreenshotURL:  screenshotURL,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Error creating booking request. Please try again.")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Booking request submitted successfully",
		"bookingId": booking.ID,
	})
}

// notifyBookingDecision emails the booking contact after a decision when an
// address is on file.
func notifyBookingDecision(bookingID, action string) {
	var booking models.Booking
	if err := database.Database.Db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return
	}

	decision := "declined"
	if action == services.BookingActionAccept {
		decision = "accepted"
	}
	utils.SendBookingProcessedEmail(booking.Email, booking.CustomerName, booking.ServiceType, decision)
}
