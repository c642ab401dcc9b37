package main

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"foodgram/config"
	"foodgram/database"
	"foodgram/routes"
	"foodgram/services"
	"foodgram/utils"
)

func main() {
	cfg := config.LoadConfig()

	if err := utils.InitLogger("logs"); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger := utils.Logger

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("Connected to database")

	// Устанавливаем глобальный *gorm.DB для роутера
	utils.SetDB(db)

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate")
	}
	logger.Info().Msg("Migration complete")

	// Справочники заполняются только если таблицы пусты
	if n, err := database.SeedIngredients(db, cfg.IngredientsFile); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed ingredients")
	} else if n > 0 {
		logger.Info().Int("count", n).Msg("Ingredients seeded")
	}
	if n, err := database.SeedTags(db, cfg.TagsFile); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed tags")
	} else if n > 0 {
		logger.Info().Int("count", n).Msg("Tags seeded")
	}

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	utils.SetRedis(rdb)
	logger.Info().Msg("Connected to Redis")

	if cfg.MediaCleanupSchedule != "" {
		c, err := services.StartMediaCleanupCron(db, cfg.MediaRoot, cfg.MediaCleanupSchedule)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start media cleanup cron")
		}
		defer c.Stop()
	}

	r := routes.SetupRouter(cfg)

	logger.Info().Str("port", cfg.Port).Msg("Server is running")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run server")
	}
}
