// Command seed-territories writes the canonical world map into the
// database. The server also seeds lazily on the first territory list,
// so this tool is only needed to prepare a database ahead of time.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/emberforge/guildmaster/internal/config"
	"github.com/emberforge/guildmaster/internal/database"
	"github.com/emberforge/guildmaster/internal/repository"
	"github.com/emberforge/guildmaster/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	territoryService := service.NewTerritoryService(service.TerritoryServiceConfig{
		TerritoryRepo: repository.NewTerritoryRepository(db),
	})

	territories, err := territoryService.Seed(ctx)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySeeded) {
			slog.Info("territories already seeded, nothing to do")
			return
		}
		slog.Error("failed to seed territories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, t := range territories {
		fmt.Printf("seeded %-30s difficulty %d  reward %dg\n", t.Name, t.Difficulty, t.GoldReward)
	}
	slog.Info("territory seeding complete", slog.Int("count", len(territories)))
}
