package main

import (
	"Food-Quality-Registry/cmd/config"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()
	log := logger.New("food-quality", utils.GetConfig("LOG_DIR"))
	defer log.Sync()

	ctx := context.Background()

	fileStorage, err := config.NewFileStorage(ctx)
	if err != nil {
		log.Fatal("file storage initialization failed", zap.Error(err))
	}

	foodRepository, closeDB, err := config.NewFoodRepository(ctx, log)
	if err != nil {
		log.Fatal("database initialization failed", zap.Error(err))
	}
	defer closeDB()

	app, err := config.NewApp(foodRepository, fileStorage, log)
	if err != nil {
		log.Fatal("application setup failed", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	port := utils.GetConfig("APP_PORT")
	log.Info("starting server", zap.String("port", port), zap.String("env", utils.GetConfig("APP_ENV")))
	if err := app.Listen(":" + port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
