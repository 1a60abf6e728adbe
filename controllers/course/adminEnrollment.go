package controllers

import (
	"cocina/database"
	"cocina/events"
	"cocina/middleware"
	"cocina/models"
	"cocina/utils"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminListEnrollments lists enrollments, optionally filtered by course or status
func AdminListEnrollments(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Enrollment{}).Preload("Course")

	if courseID := c.QueryInt("course_id"); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		if !models.EnrollmentStatus(status).IsValid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown enrollment status!", nil)
		}
		db = db.Where("status = ?", status)
	}

	var enrollments []models.Enrollment
	if err := db.Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	for i := range enrollments {
		enrollments[i].ProofData = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// AdminUpdateEnrollmentStatus moves an enrollment through its lifecycle
// (pending -> paid -> confirmed, or cancelled at any point)
func AdminUpdateEnrollmentStatus(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedEnrollmentStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	newStatus := models.EnrollmentStatus(reqData.Status)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).Preload("Course").First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == newStatus {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status unchanged.", enrollment)
	}

	previous := enrollment.Status
	enrollment.Status = newStatus
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	events.Publish(enrollment.CourseID)
	utils.Audit("enrollment.status", admin.ID, admin.Email,
		fmt.Sprintf("enrollment %d: %s -> %s", enrollment.ID, previous, newStatus))

	switch newStatus {
	case models.EnrollmentConfirmed:
		utils.SendEnrollmentConfirmedEmail(enrollment.UserEmail, enrollment.UserName, enrollment.Course.Name, enrollment.Course.ScheduledAt)
	case models.EnrollmentCancelled:
		utils.SendEnrollmentCancelledEmail(enrollment.UserEmail, enrollment.UserName, enrollment.Course.Name)
	}

	enrollment.ProofData = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status updated!", enrollment)
}

// AdminGetEnrollmentProof returns the stored payment proof as a file download
func AdminGetEnrollmentProof(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.ProofData == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No payment proof uploaded!", nil)
	}

	data, err := base64.StdEncoding.DecodeString(enrollment.ProofData)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Stored proof is corrupt!", nil)
	}

	c.Set("Content-Type", enrollment.ProofMIME)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=proof-%d", enrollment.ID))
	return c.Send(data)
}

// AdminExportEnrollmentsCSV streams the (optionally filtered) enrollments as CSV
func AdminExportEnrollmentsCSV(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Enrollment{}).Preload("Course")

	if courseID := c.QueryInt("course_id"); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var enrollments []models.Enrollment
	if err := db.Order("created_at asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export enrollments!", nil)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{"id", "course", "name", "email", "phone", "amount", "status", "payment_method", "enrolled_at"})
	for _, e := range enrollments {
		w.Write([]string{
			fmt.Sprintf("%d", e.ID),
			e.Course.Name,
			e.UserName,
			e.UserEmail,
			e.Phone,
			fmt.Sprintf("%.2f", e.Amount),
			string(e.Status),
			e.PaymentMethod,
			e.EnrolledAt.Format("2006-01-02 15:04"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export enrollments!", nil)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=enrollments.csv")
	return c.SendString(sb.String())
}
