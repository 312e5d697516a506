// Command server runs the recipebook HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/postgres"

	"github.com/skillsenselab/recipebook/internal/auth/password"
	"github.com/skillsenselab/recipebook/internal/auth/token"
	"github.com/skillsenselab/recipebook/internal/config"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/logger"
	"github.com/skillsenselab/recipebook/internal/server"
	"github.com/skillsenselab/recipebook/internal/store"
	"github.com/skillsenselab/recipebook/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "path to config file (default: config.yml if present)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Base.Name)
	logger.SetGlobalLogger(log)

	log.Info("Starting service", logger.Fields(
		"version", version.Version,
		"environment", cfg.Base.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, postgres.Open(cfg.Database.DSN), cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(store.Models()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	tokens, err := token.NewService(&cfg.JWT)
	if err != nil {
		return err
	}

	users := store.NewUserStore(db)
	recipes := store.NewRecipeStore(db)
	hasher := password.NewBcryptHasher()

	srv := server.New(cfg.Server, log)
	api := server.NewAPI(users, recipes, hasher, tokens, db, cfg.Server, log)
	api.RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}
