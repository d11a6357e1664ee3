package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/turnosapp/backend/booking"
	"github.com/turnosapp/backend/cache"
	"github.com/turnosapp/backend/controllers"
	"github.com/turnosapp/backend/cron"
	"github.com/turnosapp/backend/db"
	"github.com/turnosapp/backend/routes"
	"github.com/turnosapp/backend/scheduling"
	"github.com/turnosapp/backend/store"
	"github.com/turnosapp/backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("sin archivo .env, usando variables de entorno")
	}

	handle, err := db.Open()
	if err != nil {
		log.Fatalf("base de datos: %v", err)
	}
	if err := db.Migrate(handle); err != nil {
		log.Fatalf("migraciones: %v", err)
	}

	st := store.NewGorm(handle)
	leadDays := scheduling.DefaultLeadDays
	if raw := os.Getenv("SLOT_LEAD_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			leadDays = parsed
		}
	}

	generator := &scheduling.Generator{Store: st, LeadDays: leadDays}
	templates := &scheduling.Templates{Store: st}
	blocks := &scheduling.Blocks{Store: st}
	engine := &booking.Engine{Store: st}

	availability := cache.New(os.Getenv("REDIS_ADDR"))
	if availability.Enabled() {
		if err := availability.Ping(context.Background()); err != nil {
			log.Fatalf("redis: %v", err)
		}
		log.Println("cache de disponibilidad conectada")
	}
	mailer := utils.NewMailer()

	jobs := &cron.Jobs{Generator: generator, Engine: engine, Mailer: mailer, Cache: availability}
	if _, err := jobs.Start(); err != nil {
		log.Fatalf("cron: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: controllers.ErrorHandler})
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))

	routes.SetupAppointmentRoutes(app, &controllers.Appointments{
		Engine: engine,
		Cache:  availability,
		Mailer: mailer,
		DB:     handle,
	})
	routes.SetupScheduleRoutes(app, &controllers.Schedules{
		Generator: generator,
		Templates: templates,
		Blocks:    blocks,
		Cache:     availability,
	})
	routes.SetupUserRoutes(app, &controllers.Users{DB: handle})
	routes.SetupEmployeeRoutes(app, &controllers.Employees{DB: handle})
	routes.SetupServiceRoutes(app, &controllers.Services{DB: handle})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
