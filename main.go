package main

import (
	"cocina/admission"
	"cocina/config"
	controllers "cocina/controllers/course"
	"cocina/database"
	accountingRoutes "cocina/routers/accountingRoutes"
	authRoutes "cocina/routers/authRoutes"
	courseRoutes "cocina/routers/courseRoutes"
	noteRoutes "cocina/routers/noteRoutes"
	"cocina/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	controllers.InitCapacityTracking()

	svc := admission.NewService(database.Database.Db)
	utils.InitializeResyncScheduler(svc)

	app := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024, // inline payment proofs
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	accountingRoutes.SetupAccountingRoutes(app)
	noteRoutes.SetupNoteRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
