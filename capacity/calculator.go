package capacity

import "cocina/models"

// Snapshot is the derived seat view for one course. It is always recomputed
// from enrollment rows; the stored Course.Inscriptos counter is display-only.
type Snapshot struct {
	CourseID  uint `json:"course_id"`
	Occupied  int  `json:"occupied"`
	Available int  `json:"available"`
	IsFull    bool `json:"is_full"`
}

// CountActive returns how many of the given enrollments occupy a seat.
// Cancelled and unrecognized statuses are excluded.
func CountActive(enrollments []models.Enrollment) int {
	count := 0
	for _, e := range enrollments {
		if e.Status.IsActive() {
			count++
		}
	}
	return count
}

// Compute derives the seat snapshot for a course from its enrollment rows
func Compute(course models.Course, enrollments []models.Enrollment) Snapshot {
	occupied := CountActive(enrollments)
	available := course.Capacity - occupied
	return Snapshot{
		CourseID:  course.ID,
		Occupied:  occupied,
		Available: available,
		IsFull:    available <= 0,
	}
}
