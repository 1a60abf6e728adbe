package admission

import (
	"cocina/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, phone string) models.User {
	t.Helper()
	user := models.User{Name: "Member " + email, Email: email, Phone: phone, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, capacity int) models.Course {
	t.Helper()
	course := models.Course{
		Name:        "Fresh Pasta Basics",
		ScheduledAt: time.Now().Add(72 * time.Hour),
		Price:       50,
		Capacity:    capacity,
		Status:      "ACTIVE",
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestEnrollCourseNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "a@club.com", "111222333")

	_, err := svc.Enroll(999, user, Request{})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollCancelledCourseNotAdmissible(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createUser(t, db, "a@club.com", "111222333")
	course := createCourse(t, db, 5)
	require.NoError(t, db.Model(&course).Update("status", "CANCELLED").Error)

	_, err := svc.Enroll(course.ID, user, Request{})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollFillsCourseThenRejects(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 2)

	first := createUser(t, db, "a@club.com", "111222333")
	second := createUser(t, db, "b@club.com", "222333444")
	third := createUser(t, db, "c@club.com", "333444555")

	e1, err := svc.Enroll(course.ID, first, Request{})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, e1.Status)
	assert.Equal(t, course.Price, e1.Amount)

	_, err = svc.Enroll(course.ID, second, Request{})
	require.NoError(t, err)

	_, err = svc.Enroll(course.ID, third, Request{})
	assert.ErrorIs(t, err, ErrCourseFull)
}

func TestEnrollDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 5)
	user := createUser(t, db, "a@club.com", "111222333")

	_, err := svc.Enroll(course.ID, user, Request{})
	require.NoError(t, err)

	_, err = svc.Enroll(course.ID, user, Request{})
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollAgainAfterCancellation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 5)
	user := createUser(t, db, "a@club.com", "111222333")

	first, err := svc.Enroll(course.ID, user, Request{})
	require.NoError(t, err)

	require.NoError(t, db.Model(first).Update("status", models.EnrollmentCancelled).Error)

	second, err := svc.Enroll(course.ID, user, Request{})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, second.Status)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCancelledSeatsDoNotCountTowardCapacity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 1)

	first := createUser(t, db, "a@club.com", "111222333")
	second := createUser(t, db, "b@club.com", "222333444")

	e1, err := svc.Enroll(course.ID, first, Request{})
	require.NoError(t, err)

	_, err = svc.Enroll(course.ID, second, Request{})
	assert.ErrorIs(t, err, ErrCourseFull)

	require.NoError(t, db.Model(e1).Update("status", models.EnrollmentCancelled).Error)

	_, err = svc.Enroll(course.ID, second, Request{})
	assert.NoError(t, err)
}

func TestEnrollPhoneResolution(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 5)

	// No profile phone, none supplied
	noPhone := createUser(t, db, "a@club.com", "")
	_, err := svc.Enroll(course.ID, noPhone, Request{})
	assert.ErrorIs(t, err, ErrPhoneRequired)

	// Supplied phone is used and saved to the profile
	enrollment, err := svc.Enroll(course.ID, noPhone, Request{Phone: "555666777"})
	require.NoError(t, err)
	assert.Equal(t, "555666777", enrollment.Phone)

	var stored models.User
	require.NoError(t, db.First(&stored, noPhone.ID).Error)
	assert.Equal(t, "555666777", stored.Phone)

	// Profile phone is the fallback
	withPhone := createUser(t, db, "b@club.com", "999888777")
	enrollment, err = svc.Enroll(course.ID, withPhone, Request{})
	require.NoError(t, err)
	assert.Equal(t, "999888777", enrollment.Phone)
}

func TestResyncRepairsLegacyCounter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	course := createCourse(t, db, 10)

	statuses := []models.EnrollmentStatus{
		models.EnrollmentPending,
		models.EnrollmentPending,
		models.EnrollmentPending,
		models.EnrollmentCancelled,
	}
	for i, s := range statuses {
		e := models.Enrollment{CourseID: course.ID, UserID: uint(i + 1), Status: s, EnrolledAt: time.Now()}
		require.NoError(t, db.Create(&e).Error)
	}

	count, err := svc.Resync(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, 3, stored.Inscriptos)

	// Idempotent with unchanged enrollment data
	count, err = svc.Resync(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, 3, stored.Inscriptos)
}

func TestResyncAllTouchesEveryCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	c1 := createCourse(t, db, 5)
	c2 := createCourse(t, db, 5)
	require.NoError(t, db.Create(&models.Enrollment{CourseID: c1.ID, UserID: 1, Status: models.EnrollmentPaid, EnrolledAt: time.Now()}).Error)

	touched, err := svc.ResyncAll()
	require.NoError(t, err)
	assert.Equal(t, 2, touched)

	var stored models.Course
	require.NoError(t, db.First(&stored, c1.ID).Error)
	assert.Equal(t, 1, stored.Inscriptos)
	stored = models.Course{}
	require.NoError(t, db.First(&stored, c2.ID).Error)
	assert.Equal(t, 0, stored.Inscriptos)
}

func TestResyncUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Resync(42)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
