package courseValidator

import (
	"encoding/json"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AddCourseRequest is the parsed "courseData" JSON form field.
type AddCourseRequest struct {
	CourseTitle       string           `json:"courseTitle" validate:"required,min=3"`
	CourseDescription string           `json:"courseDescription"`
	Price             float64          `json:"price" validate:"gte=0"`
	Discount          float64          `json:"discount" validate:"gte=0,lte=100"`
	IsPublished       bool             `json:"isPublished"`
	CourseContent     []models.Chapter `json:"courseContent"`
}

func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.FormValue("courseData")
		if strings.TrimSpace(raw) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course data is required!", nil)
		}

		reqData := new(AddCourseRequest)
		if err := json.Unmarshal([]byte(raw), reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course data!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ToggleStatusRequest flips a course's published flag.
type ToggleStatusRequest struct {
	CourseID    string `json:"courseId" validate:"required"`
	IsPublished *bool  `json:"isPublished" validate:"required"`
}

func ToggleStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ToggleStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseId and isPublished are required!", nil)
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}

// RatingRequest is a 1-5 course rating.
type RatingRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

func AddRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}

// ProgressRequest marks one lecture completed.
type ProgressRequest struct {
	CourseID     string `json:"courseId" validate:"required"`
	ChapterIndex *int   `json:"chapterIndex" validate:"required,gte=0"`
	LessonIndex  *int   `json:"lessonIndex" validate:"required,gte=0"`
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseId, chapterIndex and lessonIndex are required!", nil)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// PurchaseRequest starts a card checkout for a course.
type PurchaseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PurchaseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}
