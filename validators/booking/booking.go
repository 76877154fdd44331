package bookingValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ManageSlotRequest is the educator's block/unblock body.
type ManageSlotRequest struct {
	Date        string `json:"date" validate:"required"`
	TimeSlot    string `json:"timeSlot" validate:"required"`
	IsBlocked   *bool  `json:"isBlocked" validate:"required"`
	BlockReason string `json:"blockReason"`

	ParsedDate time.Time `json:"-"`
}

func ManageSlot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ManageSlotRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "date, timeSlot and isBlocked are required!", nil)
		}

		parsed, err := parseDate(reqData.Date)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format. Use YYYY-MM-DD.", nil)
		}
		reqData.ParsedDate = parsed

		c.Locals("validatedManageSlot", reqData)
		return c.Next()
	}
}

// ProcessBookingRequest is the educator's accept/decline body.
type ProcessBookingRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
	Notes  string `json:"notes"`
}

func ProcessBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("bookingId")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Booking ID is required!", nil)
		}

		reqData := new(ProcessBookingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action. Use 'accept' or 'decline'.", nil)
		}

		c.Locals("validatedProcessBooking", reqData)
		return c.Next()
	}
}

func AvailableSlotsDate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parsed, err := parseDate(c.Params("date"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format. Use YYYY-MM-DD.", nil)
		}
		c.Locals("validatedDate", parsed)
		return c.Next()
	}
}

// ScheduleQuery bounds the educator schedule view.
type ScheduleQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func ScheduleRange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := new(ScheduleQuery)

		start := c.Query("startDate")
		end := c.Query("endDate")
		if start != "" && end != "" {
			s, err := parseDate(start)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid startDate format.", nil)
			}
			e, err := parseDate(end)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid endDate format.", nil)
			}
			query.StartDate = &s
			query.EndDate = &e
		}

		c.Locals("validatedScheduleRange", query)
		return c.Next()
	}
}

// WebsiteBookingRequest is the public multipart booking form.
type WebsiteBookingRequest struct {
	ServiceType    string
	SelectedDate   time.Time
	SelectedTime   string
	Duration       string
	Amount         float64
	TransactionID  string
	WhatsappNumber string
	Email          string
	CustomerName   string
}

func CreateWebsiteBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		serviceType := strings.TrimSpace(c.FormValue("serviceType"))
		selectedDate := strings.TrimSpace(c.FormValue("selectedDate"))
		selectedTime := strings.TrimSpace(c.FormValue("selectedTime"))
		transactionID := strings.TrimSpace(c.FormValue("transactionId"))
		whatsapp := strings.TrimSpace(c.FormValue("whatsappNumber"))

		if serviceType == "" {
			errors["serviceType"] = "Service type is required!"
		}
		if selectedDate == "" {
			errors["selectedDate"] = "Date is required!"
		}
		if selectedTime == "" {
			errors["selectedTime"] = "Time slot is required!"
		}
		if transactionID == "" {
			errors["transactionId"] = "Transaction ID is required!"
		}
		if whatsapp == "" {
			errors["whatsappNumber"] = "WhatsApp number is required!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing required fields", errors)
		}

		parsed, err := parseDate(selectedDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format. Use YYYY-MM-DD.", nil)
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("amount")), 64)
		if err != nil || amount < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid amount!", nil)
		}

		reqData := &WebsiteBookingRequest{
			ServiceType:    serviceType,
			SelectedDate:   parsed,
			SelectedTime:   selectedTime,
			Duration:       strings.TrimSpace(c.FormValue("duration")),
			Amount:         amount,
			TransactionID:  transactionID,
			WhatsappNumber: whatsapp,
			Email:          strings.TrimSpace(c.FormValue("email")),
			CustomerName:   strings.TrimSpace(c.FormValue("customerName")),
		}

		c.Locals("validatedWebsiteBooking", reqData)
		return c.Next()
	}
}
