package courseRoutes

import (
	adminController "cocina/controllers/admin"
	controllers "cocina/controllers/course"
	"cocina/middleware"
	validators "cocina/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the back-office course and enrollment routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course CRUD
	adminGroup.Get("/course/list", controllers.AdminListCourses)
	adminGroup.Post("/course", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/course/:id", validators.CourseID(), controllers.AdminDeleteCourse)

	// Legacy seat-counter repair
	adminGroup.Post("/course/:id/resync", validators.CourseID(), controllers.AdminResyncCourse)

	// Enrollment management
	adminGroup.Get("/enrollments", controllers.AdminListEnrollments)
	adminGroup.Get("/enrollments/export", controllers.AdminExportEnrollmentsCSV)
	adminGroup.Patch("/enrollment/:id/status", validators.EnrollmentID(), validators.UpdateEnrollmentStatus(), controllers.AdminUpdateEnrollmentStatus)
	adminGroup.Get("/enrollment/:id/proof", validators.EnrollmentID(), controllers.AdminGetEnrollmentProof)

	// Audit trail
	adminGroup.Get("/logs", adminController.GetAuditLogs)
}
