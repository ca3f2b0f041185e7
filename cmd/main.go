package main

import (
	"log"

	"github.com/progprogect/NutritionBot/config"
	"github.com/progprogect/NutritionBot/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}

	r := routes.SetupRouter(cfg, db, logger)
	logger.Infow("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
