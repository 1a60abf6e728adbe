package controllers

import (
	"cocina/capacity"
	"cocina/database"
	"cocina/events"
	"cocina/middleware"
	"cocina/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// tracker holds the live seat view for the courses currently listed. It is
// rebuilt on every listing pass: StopAll before Track avoids stacking
// duplicate bus subscriptions. The availability endpoint reads its
// snapshots; the admission flow never does, it always takes a fresh read.
var tracker *capacity.Registry

// InitCapacityTracking wires the tracker against the store and the change
// bus. Called once from main after the database is up.
func InitCapacityTracking() {
	tracker = capacity.NewRegistry(
		capacity.DBSource{Db: database.Database.Db},
		events.Default,
		capacity.SinkFunc(func(patch capacity.Snapshot) {
			log.Printf("[CAPACITY] course %d: occupied=%d available=%d full=%t",
				patch.CourseID, patch.Occupied, patch.Available, patch.IsFull)
		}),
	)
}

// GetAllCourses lists active courses with their live seat availability
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.
		Where("is_deleted = ? AND status = ?", false, "ACTIVE").
		Order("scheduled_at asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Fresh tracking pass for the listed set
	if tracker != nil {
		tracker.StopAll()
	}

	type courseView struct {
		models.Course
		Occupied  int  `json:"occupied"`
		Available int  `json:"available"`
		IsFull    bool `json:"is_full"`
	}

	views := make([]courseView, 0, len(courses))
	for _, course := range courses {
		var enrollments []models.Enrollment
		if err := database.Database.Db.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		snap := capacity.Compute(course, enrollments)
		views = append(views, courseView{
			Course:    course,
			Occupied:  snap.Occupied,
			Available: snap.Available,
			IsFull:    snap.IsFull,
		})
		if tracker != nil {
			tracker.Track(course)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", views)
}

// GetCourseDetails returns one course with its live seat availability
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	snap := capacity.Compute(course, enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":    course,
		"occupied":  snap.Occupied,
		"available": snap.Available,
		"is_full":   snap.IsFull,
	})
}

// GetCourseAvailability serves the tracker's last pushed snapshot for a
// course. Clients poll it to keep seat counts current between listings; a
// course that is not tracked yet falls back to a fresh computation.
func GetCourseAvailability(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	if tracker != nil {
		if snap, ok := tracker.Snapshot(uint(courseID)); ok {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched successfully!", snap)
		}
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch availability!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability fetched successfully!", capacity.Compute(course, enrollments))
}
