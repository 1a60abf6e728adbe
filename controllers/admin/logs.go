package adminController

import (
	"cocina/database"
	"cocina/middleware"
	"cocina/models"

	"github.com/gofiber/fiber/v2"
)

// GetAuditLogs lists audit entries, newest first, optionally filtered by action
func GetAuditLogs(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		db = db.Where("action = ?", action)
	}

	limit := c.QueryInt("limit")
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := db.Order("occurred_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logs fetched successfully!", logs)
}
