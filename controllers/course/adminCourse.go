package controllers

import (
	"cocina/admission"
	"cocina/database"
	"cocina/middleware"
	"cocina/models"
	"cocina/utils"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		ScheduledAt string  `json:"scheduled_at"`
		Price       float64 `json:"price"`
		Capacity    int     `json:"capacity"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	scheduledAt, err := time.Parse(time.RFC3339, reqData.ScheduledAt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid scheduled_at, expected RFC3339!", nil)
	}

	course := models.Course{
		Name:        reqData.Name,
		Description: reqData.Description,
		ScheduledAt: scheduledAt,
		Price:       reqData.Price,
		Capacity:    reqData.Capacity,
		Status:      "ACTIVE",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	utils.Audit("course.create", admin.ID, admin.Email, course.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminListCourses lists every course, deleted ones excluded, with the legacy counter
func AdminListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("scheduled_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		ScheduledAt string  `json:"scheduled_at"`
		Price       float64 `json:"price"`
		Capacity    int     `json:"capacity"`
		Status      string  `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	wasActive := course.Status == "ACTIVE"

	// Update only provided fields
	if reqData.Name != "" {
		course.Name = reqData.Name
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, reqData.ScheduledAt)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid scheduled_at, expected RFC3339!", nil)
		}
		course.ScheduledAt = scheduledAt
	}
	if reqData.Price > 0 {
		course.Price = reqData.Price
	}
	if reqData.Capacity > 0 {
		course.Capacity = reqData.Capacity
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	utils.Audit("course.update", admin.ID, admin.Email, course.Name)

	// Cancelling a course notifies every active enrollee
	if wasActive && course.Status == "CANCELLED" {
		var enrollments []models.Enrollment
		if err := database.Database.Db.
			Where("course_id = ? AND status IN ?", course.ID, models.ActiveStatuses).
			Find(&enrollments).Error; err == nil {
			for _, e := range enrollments {
				utils.SendCourseCancelledEmail(e.UserEmail, e.UserName, course.Name)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	utils.Audit("course.delete", admin.ID, admin.Email, course.Name)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminResyncCourse repairs the legacy denormalized seat counter for a course
func AdminResyncCourse(c *fiber.Ctx) error {
	admin := c.Locals("adminUser").(models.User)
	courseID := c.Locals("courseID").(int)

	svc := admission.NewService(database.Database.Db)
	count, err := svc.Resync(uint(courseID))
	if err != nil {
		if err == admission.ErrCourseNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resync course counter!", nil)
	}

	utils.Audit("course.resync", admin.ID, admin.Email, fmt.Sprintf("course %d -> %d", courseID, count))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course counter resynced!", fiber.Map{
		"course_id":  courseID,
		"inscriptos": count,
	})
}
