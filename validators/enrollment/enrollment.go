package enrollmentValidator

import (
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ProcessRequest is the approve/reject decision body.
type ProcessRequest struct {
	Action          string `json:"action" validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason"`
}

func ProcessEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("enrollmentId")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		reqData := new(ProcessRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action. Use 'approve' or 'reject'.", nil)
		}

		c.Locals("validatedProcess", reqData)
		return c.Next()
	}
}

func SubmitEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		if strings.TrimSpace(c.FormValue("courseId")) == "" {
			errors["courseId"] = "Course ID is missing."
		}
		if strings.TrimSpace(c.FormValue("transactionId")) == "" {
			errors["transactionId"] = "Transaction ID is required."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ListQuery is the shared pagination + status filter for review queues.
type ListQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
}

func ListEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		switch reqData.Status {
		case "", "pending", "approved", "rejected":
			if reqData.Status == "" {
				reqData.Status = "pending"
			}
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
