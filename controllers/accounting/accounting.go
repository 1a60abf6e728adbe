package accountingController

import (
	"cocina/database"
	"cocina/middleware"
	"cocina/models"
	"cocina/utils"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateAccount registers a new treasury account
func CreateAccount(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)

	reqData, ok := c.Locals("validatedAccount").(*struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Balance     float64 `json:"balance"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	account := models.Account{
		Name:        reqData.Name,
		Description: reqData.Description,
		Balance:     reqData.Balance,
	}

	if err := database.Database.Db.Create(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create account!", nil)
	}

	utils.Audit("account.create", admin.ID, admin.Email, account.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Account created successfully!", account)
}

// ListAccounts returns every treasury account with its balance
func ListAccounts(c *fiber.Ctx) error {
	var accounts []models.Account
	if err := database.Database.Db.Where("is_deleted = ?", false).Find(&accounts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts fetched successfully!", accounts)
}

// DeleteAccount soft deletes an account; its movements stay for the books
func DeleteAccount(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	accountID := c.Locals("accountID").(int)

	var account models.Account
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", accountID, false).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	account.IsDeleted = true
	if err := database.Database.Db.Save(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete account!", nil)
	}

	utils.Audit("account.delete", admin.ID, admin.Email, account.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account deleted successfully!", nil)
}

// CreateMovement records an income or expense and updates the account balance
func CreateMovement(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)

	reqData, ok := c.Locals("validatedMovement").(*struct {
		AccountID    uint    `json:"account_id"`
		Kind         string  `json:"kind"`
		Amount       float64 `json:"amount"`
		Concept      string  `json:"concept"`
		EnrollmentID *uint   `json:"enrollment_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var account models.Account
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.AccountID, false).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	movement := models.Movement{
		AccountID:    account.ID,
		Kind:         reqData.Kind,
		Amount:       reqData.Amount,
		Concept:      reqData.Concept,
		Reference:    uuid.NewString(),
		EnrollmentID: reqData.EnrollmentID,
		OccurredAt:   time.Now(),
	}

	balanceAfter := account.Balance
	if movement.Kind == models.MovementIncome {
		balanceAfter += movement.Amount
	} else {
		balanceAfter -= movement.Amount
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record movement!", nil)
	}
	account.Balance = balanceAfter
	if err := tx.Save(&account).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update account balance!", nil)
	}
	tx.Commit()

	utils.Audit("movement.create", admin.ID, admin.Email,
		fmt.Sprintf("%s %.2f on %s", movement.Kind, movement.Amount, account.Name))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Movement recorded successfully!", fiber.Map{
		"movement":      movement,
		"balance_after": balanceAfter,
	})
}

// ListMovements returns movements, optionally filtered by account
func ListMovements(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Movement{}).Where("is_deleted = ?", false).Preload("Account")

	if accountID := c.QueryInt("account_id"); accountID > 0 {
		db = db.Where("account_id = ?", accountID)
	}

	var movements []models.Movement
	if err := db.Order("occurred_at desc").Find(&movements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch movements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Movements fetched successfully!", movements)
}

// GetAccountSummary totals income and expense per account
func GetAccountSummary(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(int)

	var account models.Account
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", accountID, false).First(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	var movements []models.Movement
	if err := database.Database.Db.Where("account_id = ? AND is_deleted = ?", account.ID, false).Find(&movements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch movements!", nil)
	}

	var income, expense float64
	for _, m := range movements {
		if m.Kind == models.MovementIncome {
			income += m.Amount
		} else {
			expense += m.Amount
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account summary fetched!", fiber.Map{
		"account":   account,
		"income":    income,
		"expense":   expense,
		"movements": len(movements),
	})
}

// ExportMovementsCSV streams the movement ledger as CSV
func ExportMovementsCSV(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Movement{}).Where("is_deleted = ?", false).Preload("Account")

	if accountID := c.QueryInt("account_id"); accountID > 0 {
		db = db.Where("account_id = ?", accountID)
	}

	var movements []models.Movement
	if err := db.Order("occurred_at asc").Find(&movements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export movements!", nil)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{"reference", "account", "kind", "amount", "concept", "occurred_at"})
	for _, m := range movements {
		w.Write([]string{
			m.Reference,
			m.Account.Name,
			m.Kind,
			fmt.Sprintf("%.2f", m.Amount),
			m.Concept,
			m.OccurredAt.Format("2006-01-02 15:04"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export movements!", nil)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=movements.csv")
	return c.SendString(sb.String())
}
