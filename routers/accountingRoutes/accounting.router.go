package accountingRoutes

import (
	accountingController "cocina/controllers/accounting"
	"cocina/middleware"
	accountingValidator "cocina/validators/accounting"

	"github.com/gofiber/fiber/v2"
)

// SetupAccountingRoutes sets up the back-office treasury routes
func SetupAccountingRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/account/list", accountingController.ListAccounts)
	adminGroup.Post("/account", accountingValidator.CreateAccount(), accountingController.CreateAccount)
	adminGroup.Delete("/account/:id", accountingValidator.AccountID(), accountingController.DeleteAccount)
	adminGroup.Get("/account/:id/summary", accountingValidator.AccountID(), accountingController.GetAccountSummary)

	adminGroup.Get("/movement/list", accountingController.ListMovements)
	adminGroup.Post("/movement", accountingValidator.CreateMovement(), accountingController.CreateMovement)
	adminGroup.Get("/movement/export", accountingController.ExportMovementsCSV)
}
