package courseValidator

import (
	"cocina/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CreateCourse validates the admin course-creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string  `json:"name"`
			Description string  `json:"description"`
			ScheduledAt string  `json:"scheduled_at"`
			Price       float64 `json:"price"`
			Capacity    int     `json:"capacity"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.ScheduledAt == "" {
			errors["scheduled_at"] = "Scheduled date is required!"
		} else if _, err := time.Parse(time.RFC3339, reqData.ScheduledAt); err != nil {
			errors["scheduled_at"] = "Scheduled date must be RFC3339!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if reqData.Capacity <= 0 {
			errors["capacity"] = "Capacity must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the admin course-update body; all fields optional
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string  `json:"name"`
			Description string  `json:"description"`
			ScheduledAt string  `json:"scheduled_at"`
			Price       float64 `json:"price"`
			Capacity    int     `json:"capacity"`
			Status      string  `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ScheduledAt != "" {
			if _, err := time.Parse(time.RFC3339, reqData.ScheduledAt); err != nil {
				errors["scheduled_at"] = "Scheduled date must be RFC3339!"
			}
		}

		if reqData.Capacity < 0 {
			errors["capacity"] = "Capacity cannot be negative!"
		}

		if reqData.Status != "" && reqData.Status != "ACTIVE" && reqData.Status != "CANCELLED" {
			errors["status"] = "Status must be ACTIVE or CANCELLED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}
