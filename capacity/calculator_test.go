package capacity

import (
	"cocina/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountActive(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.EnrollmentStatus
		want     int
	}{
		{"empty set", nil, 0},
		{"all active kinds", []models.EnrollmentStatus{models.EnrollmentPending, models.EnrollmentPaid, models.EnrollmentConfirmed}, 3},
		{"cancelled excluded", []models.EnrollmentStatus{models.EnrollmentPending, models.EnrollmentCancelled}, 1},
		{"only cancelled", []models.EnrollmentStatus{models.EnrollmentCancelled, models.EnrollmentCancelled}, 0},
		{"unknown status excluded", []models.EnrollmentStatus{"waitlisted", "", models.EnrollmentPaid}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enrollments := make([]models.Enrollment, len(tt.statuses))
			for i, s := range tt.statuses {
				enrollments[i] = models.Enrollment{Status: s}
			}
			assert.Equal(t, tt.want, CountActive(enrollments))
		})
	}
}

func TestCompute(t *testing.T) {
	course := models.Course{Capacity: 2}
	course.ID = 7

	snap := Compute(course, []models.Enrollment{
		{Status: models.EnrollmentPending},
		{Status: models.EnrollmentCancelled},
	})
	assert.Equal(t, uint(7), snap.CourseID)
	assert.Equal(t, 1, snap.Occupied)
	assert.Equal(t, 1, snap.Available)
	assert.False(t, snap.IsFull)

	full := Compute(course, []models.Enrollment{
		{Status: models.EnrollmentPending},
		{Status: models.EnrollmentConfirmed},
	})
	assert.Equal(t, 0, full.Available)
	assert.True(t, full.IsFull)
}
