package main

import (
	"log"

	"lms/config"
	webhookController "lms/controllers/webhook"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	bookingRoutes "lms/routers/bookingRoutes"
	courseRoutes "lms/routers/courseRoutes"
	educatorRoutes "lms/routers/educatorRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("API Working") })

	// Webhooks need the raw body for signature verification, so they sit
	// outside the /api groups.
	app.Post("/clerk", webhookController.ClerkWebhooks)
	app.Post("/stripe", webhookController.StripeWebhooks)

	adminRoutes.SetupAdminRoutes(app)
	educatorRoutes.SetupEducatorRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	bookingRoutes.SetupBookingRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
