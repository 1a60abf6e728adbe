package courseRoutes

import (
	controllers "cocina/controllers/course"
	"cocina/middleware"
	validators "cocina/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all member-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details with live seat availability
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:id/availability", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseAvailability)

	// Admission
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Member enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)

	enrollmentGroup := app.Group("/enrollment")
	enrollmentGroup.Post("/:id/cancel", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.CancelEnrollment)
	enrollmentGroup.Post("/:id/proof", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.UploadPaymentProof)
}
