package accountingValidator

import (
	"cocina/middleware"
	"cocina/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AccountID validates the :id route parameter
func AccountID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Account ID!", nil)
		}

		c.Locals("accountID", id)
		return c.Next()
	}
}

// CreateAccount validates the account-creation body
func CreateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string  `json:"name"`
			Description string  `json:"description"`
			Balance     float64 `json:"balance"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAccount", reqData)
		return c.Next()
	}
}

// CreateMovement validates the movement body
func CreateMovement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AccountID    uint    `json:"account_id"`
			Kind         string  `json:"kind"`
			Amount       float64 `json:"amount"`
			Concept      string  `json:"concept"`
			EnrollmentID *uint   `json:"enrollment_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.AccountID == 0 {
			errors["account_id"] = "Account ID is required!"
		}

		if reqData.Kind != models.MovementIncome && reqData.Kind != models.MovementExpense {
			errors["kind"] = "Kind must be INCOME or EXPENSE!"
		}

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMovement", reqData)
		return c.Next()
	}
}
