package main

import (
	"log"

	"github.com/campus-rooms/booking-service/config"
	"github.com/campus-rooms/booking-service/internal/handler"
	"github.com/campus-rooms/booking-service/internal/middleware"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/campus-rooms/booking-service/internal/service"
	"github.com/campus-rooms/booking-service/pkg/database"
	"github.com/campus-rooms/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking lifecycle events for downstream services
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Service
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, orgRepo, ruleRepo, publisher)

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "room-booking-service"})
	})

	api := e.Group("/api/v1", middleware.Auth(sessionRepo))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewRoomHandler(roomRepo, bookingSvc).RegisterRoutes(api)
	handler.NewRuleHandler(ruleRepo).RegisterRoutes(api)

	log.Printf("Room Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
