package main

import (
	"skillhub/config"
	"skillhub/database"
	authRoutes "skillhub/routers/authRoutes"
	courseRoutes "skillhub/routers/courseRoutes"
	"skillhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "SkillHub Backend API is running!"})
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)

	utils.InitializeReconciliationScheduler()

	logrus.Infof("Server is running on port %s", config.AppConfig.Port)
	logrus.Fatal(app.Listen(":" + config.AppConfig.Port))
}
