package controllers

import (
	"cocina/admission"
	"cocina/config"
	"cocina/database"
	"cocina/events"
	"cocina/middleware"
	"cocina/models"
	"cocina/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse runs the admission flow for the authenticated user
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		Phone         string `json:"phone"`
		PaymentMethod string `json:"payment_method"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := admission.NewService(database.Database.Db)
	enrollment, err := svc.Enroll(uint(courseID), user, admission.Request{
		Phone:         reqData.Phone,
		PaymentMethod: reqData.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, admission.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
		case errors.Is(err, admission.ErrCourseFull):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is full!", nil)
		case errors.Is(err, admission.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		case errors.Is(err, admission.ErrPhoneRequired):
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "A phone number is required to enroll!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	// Best-effort observers; none of them can undo the enrollment
	events.Publish(enrollment.CourseID)
	var course models.Course
	if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err == nil {
		utils.Audit("enrollment.create", user.ID, user.Email, course.Name)
		utils.SendEnrollmentPendingEmail(user.Email, user.Name, course.Name, course.ScheduledAt, enrollment.Amount)
		utils.NotifyAdminEnrollment(course.Name, user.Name, user.Email, enrollment.Phone, enrollment.Amount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetUserEnrollments lists the authenticated user's enrollments
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Proof blobs are fetched one by one, not with the listing
	for i := range enrollments {
		enrollments[i].ProofData = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// CancelEnrollment sets the user's own enrollment to cancelled, freeing the seat
func CancelEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.
		Where("id = ? AND user_id = ?", enrollmentID, userID).
		Preload("Course").
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == models.EnrollmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is already cancelled!", nil)
	}

	enrollment.Status = models.EnrollmentCancelled
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel enrollment!", nil)
	}

	events.Publish(enrollment.CourseID)
	utils.Audit("enrollment.cancel", userID, enrollment.UserEmail, enrollment.Course.Name)
	utils.SendEnrollmentCancelledEmail(enrollment.UserEmail, enrollment.UserName, enrollment.Course.Name)

	enrollment.ProofData = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled successfully!", enrollment)
}

// UploadPaymentProof stores the payment proof inline on the enrollment row
func UploadPaymentProof(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.
		Where("id = ? AND user_id = ?", enrollmentID, userID).
		Preload("Course").
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == models.EnrollmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot attach a proof to a cancelled enrollment!", nil)
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Proof file is required!", nil)
	}

	data, mime, err := utils.EncodeUploadedProof(file, config.AppConfig.ProofMaxBytes)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid proof file: "+err.Error(), nil)
	}

	enrollment.ProofData = data
	enrollment.ProofMIME = mime
	if enrollment.Status == models.EnrollmentPending {
		enrollment.Status = models.EnrollmentPaid
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save payment proof!", nil)
	}

	events.Publish(enrollment.CourseID)
	utils.Audit("enrollment.proof", userID, enrollment.UserEmail, enrollment.Course.Name)
	utils.NotifyAdminProofUploaded(enrollment.Course.Name, enrollment.UserName, enrollment.UserEmail)

	enrollment.ProofData = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment proof uploaded successfully!", enrollment)
}
