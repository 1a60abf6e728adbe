package noteRoutes

import (
	noteController "cocina/controllers/notes"
	"cocina/middleware"
	noteValidator "cocina/validators/notes"

	"github.com/gofiber/fiber/v2"
)

// SetupNoteRoutes sets up the back-office notes routes
func SetupNoteRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/note/list", noteController.ListNotes)
	adminGroup.Post("/note", noteValidator.NoteBody(), noteController.CreateNote)
	adminGroup.Put("/note/:id", noteValidator.NoteID(), noteValidator.NoteBody(), noteController.UpdateNote)
	adminGroup.Delete("/note/:id", noteValidator.NoteID(), noteController.DeleteNote)
}
