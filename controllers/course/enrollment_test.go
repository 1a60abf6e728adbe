package controllers

import (
	"bytes"
	"cocina/config"
	"cocina/database"
	"cocina/middleware"
	"cocina/models"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.AuditLog{},
	))
	database.Database = database.DbInstance{Db: db}

	InitCapacityTracking()

	app := fiber.New()
	registerTestRoutes(app)
	return app
}

// registerTestRoutes mirrors the wiring in routers/courseRoutes without
// importing it (the router package imports this one)
func registerTestRoutes(app *fiber.App) {
	app.Get("/course/list", middleware.JWTMiddleware, GetAllCourses)
	app.Post("/course/:id/enroll", middleware.JWTMiddleware, enrollValidator(), EnrollInCourse)
	app.Get("/course/:id/availability", middleware.JWTMiddleware, courseIDValidator(), GetCourseAvailability)
	app.Post("/enrollment/:id/cancel", middleware.JWTMiddleware, enrollmentIDValidator(), CancelEnrollment)
}

func courseIDValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		c.Locals("courseID", id)
		return c.Next()
	}
}

func enrollmentIDValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

func enrollValidator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		c.Locals("courseID", id)
		reqData := new(struct {
			Phone         string `json:"phone"`
			PaymentMethod string `json:"payment_method"`
		})
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func seedUser(t *testing.T, email, phone string) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Member", Email: email, Phone: phone, Password: "hash"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedCourse(t *testing.T, capacity int) models.Course {
	t.Helper()
	course := models.Course{
		Name:        "Sourdough Workshop",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Price:       35,
		Capacity:    capacity,
		Status:      "ACTIVE",
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*fiber.Map, int) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	result := new(fiber.Map)
	json.NewDecoder(resp.Body).Decode(result)
	return result, resp.StatusCode
}

func TestEnrollEndpointFlow(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, 2)

	_, tokenA := seedUser(t, "a@club.com", "111222333")
	_, tokenB := seedUser(t, "b@club.com", "222333444")
	_, tokenC := seedUser(t, "c@club.com", "333444555")

	path := fmt.Sprintf("/course/%d/enroll", course.ID)

	_, code := doJSON(t, app, "POST", path, tokenA, nil)
	assert.Equal(t, fiber.StatusOK, code)

	// Duplicate admission is rejected
	_, code = doJSON(t, app, "POST", path, tokenA, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	_, code = doJSON(t, app, "POST", path, tokenB, nil)
	assert.Equal(t, fiber.StatusOK, code)

	// Third admission hits the capacity wall
	result, code := doJSON(t, app, "POST", path, tokenC, nil)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Course is full!", (*result)["message"])
}

func TestEnrollRequiresPhone(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, 5)

	_, token := seedUser(t, "nophone@club.com", "")
	path := fmt.Sprintf("/course/%d/enroll", course.ID)

	_, code := doJSON(t, app, "POST", path, token, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	_, code = doJSON(t, app, "POST", path, token, fiber.Map{"phone": "444555666"})
	assert.Equal(t, fiber.StatusOK, code)

	var stored models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "nophone@club.com").First(&stored).Error)
	assert.Equal(t, "444555666", stored.Phone)
}

func TestCancelFreesSeat(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, 1)

	_, tokenA := seedUser(t, "a@club.com", "111222333")
	_, tokenB := seedUser(t, "b@club.com", "222333444")

	enrollPath := fmt.Sprintf("/course/%d/enroll", course.ID)

	result, code := doJSON(t, app, "POST", enrollPath, tokenA, nil)
	require.Equal(t, fiber.StatusOK, code)

	data := (*result)["data"].(map[string]interface{})
	enrollmentID := int(data["ID"].(float64))

	_, code = doJSON(t, app, "POST", enrollPath, tokenB, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	_, code = doJSON(t, app, "POST", fmt.Sprintf("/enrollment/%d/cancel", enrollmentID), tokenA, nil)
	assert.Equal(t, fiber.StatusOK, code)

	_, code = doJSON(t, app, "POST", enrollPath, tokenB, nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestCourseListShowsAvailability(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, 2)

	_, token := seedUser(t, "a@club.com", "111222333")

	_, code := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, code)

	result, code := doJSON(t, app, "GET", "/course/list", token, nil)
	require.Equal(t, fiber.StatusOK, code)

	courses := (*result)["data"].([]interface{})
	require.Len(t, courses, 1)
	view := courses[0].(map[string]interface{})
	assert.Equal(t, float64(1), view["occupied"])
	assert.Equal(t, float64(1), view["available"])
	assert.Equal(t, false, view["is_full"])
}

func TestAvailabilityEndpointAfterListing(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t, 3)

	_, token := seedUser(t, "a@club.com", "111222333")

	// Listing starts the tracking pass
	_, code := doJSON(t, app, "GET", "/course/list", token, nil)
	require.Equal(t, fiber.StatusOK, code)

	_, code = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, code)

	// The tracker converges to the new occupancy
	assert.Eventually(t, func() bool {
		result, code := doJSON(t, app, "GET", fmt.Sprintf("/course/%d/availability", course.ID), token, nil)
		if code != fiber.StatusOK {
			return false
		}
		data, ok := (*result)["data"].(map[string]interface{})
		return ok && data["occupied"] == float64(1)
	}, time.Second, 10*time.Millisecond)
}
