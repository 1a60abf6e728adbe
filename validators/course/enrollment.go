package courseValidator

import (
	"cocina/middleware"
	"cocina/models"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidPhone(phone string) bool {
	re := regexp.MustCompile(`^\+?\d{6,15}$`)
	return re.MatchString(phone)
}

// EnrollCourse validates the enrollment request. The phone is optional here:
// the admission flow falls back to the profile phone and rejects only when
// neither is present.
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Phone         string `json:"phone"`
			PaymentMethod string `json:"payment_method"`
		})
		// Body is optional for members with a saved phone
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		errors := make(map[string]string)

		if reqData.Phone != "" && !isValidPhone(strings.TrimSpace(reqData.Phone)) {
			errors["phone"] = "Invalid phone number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the :id route parameter for enrollment routes
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// UpdateEnrollmentStatus validates the admin status-change body
func UpdateEnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.EnrollmentStatus(reqData.Status).IsValid() {
			errors["status"] = "Status must be one of pending, paid, confirmed, cancelled!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentStatus", reqData)
		return c.Next()
	}
}
