package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/senyabanana/farm-commons/internal/db"
	"github.com/senyabanana/farm-commons/internal/handlers"
	"github.com/senyabanana/farm-commons/internal/repository"
	"github.com/senyabanana/farm-commons/internal/router"
	"github.com/senyabanana/farm-commons/internal/router/config"
	"github.com/senyabanana/farm-commons/internal/services"
	"github.com/senyabanana/farm-commons/internal/storage"
	"github.com/senyabanana/farm-commons/internal/storage/gcs"
	"github.com/senyabanana/farm-commons/internal/storage/postgres"
	"github.com/senyabanana/farm-commons/internal/storage/sqlite"

	gcstorage "cloud.google.com/go/storage"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	backend, err := openBackend(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("error initializing %s store: %v", cfg.StoreBackend, err)
	}

	repo := repository.New(backend)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Println(err)
		}
	}()

	communityService := services.NewCommunityService(repo)
	chatService := services.NewChatService(repo)
	userService := services.NewUserService(repo, communityService)
	pollService := services.NewPollService(repo, chatService, logger)
	marketService := services.NewMarketService(repo)
	tipService := services.NewTipService(repo)

	routes := router.InitRoutes(router.Handlers{
		Stats:       handlers.NewStatsHandler(repo, logger, cfg.RequestTimeout),
		Users:       handlers.NewUserHandler(userService, communityService, logger, cfg.RequestTimeout),
		Communities: handlers.NewCommunityHandler(communityService, chatService, pollService, logger, cfg.RequestTimeout),
		Polls:       handlers.NewPollHandler(pollService, logger, cfg.RequestTimeout),
		Market:      handlers.NewMarketHandler(marketService, logger, cfg.RequestTimeout),
		Tips:        handlers.NewTipHandler(tipService, logger, cfg.RequestTimeout),
	})

	log.Printf("server is listening on %s (store: %s)...", cfg.ServerAddress, cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// openBackend открывает хранилище, выбранное в STORE_BACKEND.
func openBackend(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendFile:
		return storage.NewFile(cfg.DataDir)
	case config.BackendSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.BackendPostgres:
		runDBMigration(cfg.MigrationURL, db.ConnString(cfg))
		dbPool, err := db.InitDb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(dbPool), nil
	case config.BackendGCS:
		client, err := gcstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return gcs.New(client, cfg.GCSBucket, cfg.GCSPrefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
