package config

import (
	"Food-Quality-Registry/internal/api/handlers"
	"Food-Quality-Registry/internal/api/presenters"
	"Food-Quality-Registry/internal/api/routes"
	"Food-Quality-Registry/internal/middleware"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/internal/utils/storage"
	"Food-Quality-Registry/internal/views"
	"Food-Quality-Registry/pkg/food"
	"Food-Quality-Registry/pkg/jwt"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func NewApp(foodRepository food.FoodRepository, fileStorage storage.FileStorage, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
		// Uploads above MaxImageSize must reach the handlers to get a 400.
		BodyLimit:    utils.GetConfigInt("BODY_LIMIT_MB", 10) * 1024 * 1024,
		ErrorHandler: errorHandler(log),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())

	// setting up logging and limiter
	logDir := utils.GetConfig("LOG_DIR")
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		filepath.Join(logDir, "app.log"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 20),
		Expiration: 1 * time.Second,
	}))

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
	foodService := food.NewFoodService(foodRepository, fileStorage, log)

	// Handler
	foodProductHandler := handlers.NewFoodProductHandler(foodService, validator)
	foodProductView, err := views.NewFoodProductView(foodService, fileStorage, validator, utils.GetConfig("LOGIN_URL"), log)
	if err != nil {
		return nil, err
	}

	// routes
	routesConfig := routes.Config{
		App:                app,
		FoodProductHandler: foodProductHandler,
		FoodProductView:    foodProductView,
		Middleware:         middlewares,
		JWTService:         jwtService,
		CORSOrigins:        utils.GetConfig("CORS_ALLOWED_ORIGINS"),
	}
	routesConfig.Setup()
	return app, nil
}

// errorHandler renders errors that escape handlers in the common envelope.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			log.Error("unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return presenters.ErrorResponse(c, code, message, nil)
	}
}
