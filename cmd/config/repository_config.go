package config

import (
	migration "Food-Quality-Registry/cmd/database/migrate"
	"Food-Quality-Registry/internal/utils"
	"Food-Quality-Registry/pkg/food"
	"context"

	"go.uber.org/zap"
)

// NewFoodRepository connects the store selected by DB_DRIVER, prepares its
// schema and returns the repository with a matching close function.
func NewFoodRepository(ctx context.Context, log *zap.Logger) (food.FoodRepository, func(), error) {
	if utils.GetConfig("DB_DRIVER") == DriverMongoDB {
		client, db, err := ConnectMongo(ctx)
		if err != nil {
			return nil, nil, err
		}
		if err := food.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info("connected to MongoDB", zap.String("database", db.Name()))

		return food.NewMongoFoodRepository(db), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn("closing MongoDB connection failed", zap.Error(err))
			}
		}, nil
	}

	db, err := ConnectDB()
	if err != nil {
		return nil, nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, nil, err
	}
	log.Info("database migration complete", zap.String("driver", utils.GetConfig("DB_DRIVER")))

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return food.NewFoodRepository(db), func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("closing database connection failed", zap.Error(err))
		}
	}, nil
}
