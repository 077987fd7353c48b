package main

import (
	"context"
	"log"

	"github.com/pxkrit/box-office/config"
	"github.com/pxkrit/box-office/internal/handler"
	"github.com/pxkrit/box-office/internal/middleware"
	"github.com/pxkrit/box-office/internal/repository"
	"github.com/pxkrit/box-office/internal/service"
	"github.com/pxkrit/box-office/pkg/database"
	"github.com/pxkrit/box-office/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, lifecycle notifications disabled")
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	holdRepo := repository.NewHoldRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, holdRepo, publisher)
	holdSvc := service.NewHoldService(holdRepo, eventRepo, cfg.HoldTTL)
	bookingSvc := service.NewBookingService(bookingRepo, holdRepo, publisher)

	// Background expiry reclamation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.NewSweeper(holdRepo, cfg.SweepInterval).Start(ctx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "box-office"})
	})

	events := e.Group("/api/v1/events")
	handler.NewEventHandler(eventSvc).RegisterRoutes(events)
	handler.NewHoldHandler(holdSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	log.Printf("Box Office starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
