package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate_portal_backend/internal/listings/repository"
	"estate_portal_backend/migrations"
	"estate_portal_backend/platform/apperr"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/db"
	"estate_portal_backend/platform/logger"
)

//go:embed listings.yaml
var defaultSeed []byte

func main() {
	file := flag.String("file", "", "seed file to load instead of the bundled sample listings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src io.Reader = bytes.NewReader(defaultSeed)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			panic("failed to open seed file: " + err.Error())
		}
		defer f.Close()
		src = f
	}

	listings, err := parseSeed(src)
	if err != nil {
		log.Error("invalid seed file", "error", err)
		panic("invalid seed file: " + err.Error())
	}

	if err := db.WithRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		panic("failed to run database migrations: " + err.Error())
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)
	created, skipped := 0, 0
	for _, l := range listings {
		if _, err := repo.GetByID(ctx, l.ID); err == nil {
			skipped++
			continue
		} else if !apperr.Is(err, apperr.KindNotFound) {
			panic("failed to check listing: " + err.Error())
		}
		if _, err := repo.Create(ctx, l); err != nil {
			panic("failed to seed listing " + l.Name + ": " + err.Error())
		}
		created++
		log.Info("listing seeded", "id", l.ID, "name", l.Name, "builderId", l.BuilderID)
	}

	log.Info("seed complete", "created", created, "skipped", skipped)
}
