package main

import (
	"log"

	"github.com/Jidetireni/gym-manager/cmd/seed/seed"
	"github.com/Jidetireni/gym-manager/internal/config"
	"github.com/Jidetireni/gym-manager/pkg/logger"
)

func main() {

	cfg := config.New()
	if !cfg.IsDev {
		log.Fatal("Seeding is only allowed in development environment")
	}

	seeder, cleanup, err := seed.NewSeeder(cfg, logger.New(*cfg))
	if err != nil {
		log.Fatalf("Failed to initialize seeder: %v", err)
	}

	defer cleanup()
	seeder.ResetDB()
	seeder.CreateMembers()
}
