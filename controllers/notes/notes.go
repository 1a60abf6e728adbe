package noteController

import (
	"cocina/database"
	"cocina/middleware"
	"cocina/models"
	"cocina/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateNote adds a back-office note
func CreateNote(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)

	reqData, ok := c.Locals("validatedNote").(*struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	note := models.Note{
		Title:    reqData.Title,
		Body:     reqData.Body,
		AuthorID: admin.ID,
	}

	if err := database.Database.Db.Create(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create note!", nil)
	}

	utils.Audit("note.create", admin.ID, admin.Email, note.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Note created successfully!", note)
}

// ListNotes returns all notes, newest first
func ListNotes(c *fiber.Ctx) error {
	var notes []models.Note
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notes fetched successfully!", notes)
}

// UpdateNote edits a note's title or body
func UpdateNote(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	noteID := c.Locals("noteID").(int)

	var note models.Note
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", noteID, false).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	reqData, ok := c.Locals("validatedNote").(*struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		note.Title = reqData.Title
	}
	if reqData.Body != "" {
		note.Body = reqData.Body
	}

	if err := database.Database.Db.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update note!", nil)
	}

	utils.Audit("note.update", admin.ID, admin.Email, note.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note updated successfully!", note)
}

// DeleteNote soft deletes a note
func DeleteNote(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	noteID := c.Locals("noteID").(int)

	var note models.Note
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", noteID, false).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	note.IsDeleted = true
	if err := database.Database.Db.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete note!", nil)
	}

	utils.Audit("note.delete", admin.ID, admin.Email, note.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note deleted successfully!", nil)
}
