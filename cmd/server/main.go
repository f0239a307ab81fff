package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/theananta/certificate-studio/internal/config"
	"github.com/theananta/certificate-studio/internal/database"
	"github.com/theananta/certificate-studio/internal/handler"
	"github.com/theananta/certificate-studio/internal/queue"
	"github.com/theananta/certificate-studio/internal/render"
	"github.com/theananta/certificate-studio/internal/repository"
	"github.com/theananta/certificate-studio/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(database.MigrateDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName), "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis is optional: without it the verify cache and the rate
	// limiter become pass-throughs.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	participants := repository.NewParticipantRepo(db)
	templates := repository.NewTemplateRepo(db)
	certificates := repository.NewCertificateRepo(db)

	fonts := render.NewFontLibrary(cfg.FontsDir)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	orgH := handler.NewOrganizerHandler(cfg, cacheCfg, events, participants, templates, certificates, rdb)
	verifyH := handler.NewVerifyHandler(cfg, events, participants, templates, certificates, fonts)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterOrganizer(e, orgH, cfg.JWTSecret)
	router.RegisterPublic(e, verifyH, cfg, cacheCfg, rlCfg, rdb)

	// The consumer keeps its own connection and reconnects on loss.
	go func() {
		if err := queue.StartConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
