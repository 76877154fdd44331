package bookingRoutes

import (
	bookingController "lms/controllers/booking"
	"lms/middleware"
	bookingValidator "lms/validators/booking"

	"github.com/gofiber/fiber/v2"
)

func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/api/booking")

	// Educator routes (authentication required)
	booking.Get("/pending-bookings", middleware.Protect, middleware.ProtectEducator, bookingController.GetPendingBookings)
	booking.Post("/process-booking/:bookingId", middleware.Protect, middleware.ProtectEducator, bookingValidator.ProcessBooking(), bookingController.ProcessBooking)
	booking.Post("/manage-slot", middleware.Protect, middleware.ProtectEducator, bookingValidator.ManageSlot(), bookingController.ManageTimeSlot)
	booking.Get("/educator-schedule", middleware.Protect, middleware.ProtectEducator, bookingValidator.ScheduleRange(), bookingController.GetEducatorSchedule)

	// Website routes (no authentication required)
	booking.Get("/available-slots/:date", bookingValidator.AvailableSlotsDate(), bookingController.GetAvailableSlots)
	booking.Post("/create-booking-website", bookingValidator.CreateWebsiteBooking(), bookingController.CreateWebsiteBooking)
}
