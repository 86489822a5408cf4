package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"healthdash/internal/app"
	"healthdash/internal/handlers"
	"healthdash/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main").Function("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName: "healthdash",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": "error", "error": err.Error()})
		},
	})

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Info("shutdown signal received")
		if err := server.Shutdown(); err != nil {
			log.Er("server shutdown failed", err)
		}
	}()

	slog.Info("server starting", "port", application.Config.ServerPort, "environment", application.Config.Environment)
	if err := server.Listen(fmt.Sprintf(":%d", application.Config.ServerPort)); err != nil {
		log.Er("server stopped", err)
	}

	if err := application.Close(); err != nil {
		log.Er("failed to close application cleanly", err)
	}
}
