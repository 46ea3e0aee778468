package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gridiron-labs/trivia-exam/internal/config"
	"github.com/gridiron-labs/trivia-exam/internal/handler"
	"github.com/gridiron-labs/trivia-exam/internal/middleware"
	"github.com/gridiron-labs/trivia-exam/internal/quiz"
	"github.com/gridiron-labs/trivia-exam/internal/router"
	"github.com/gridiron-labs/trivia-exam/internal/service"
	"github.com/gridiron-labs/trivia-exam/internal/session"
	"github.com/gridiron-labs/trivia-exam/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	bank, err := quiz.LoadBank()
	if err != nil {
		log.Fatalf("failed to load question bank: %v", err)
	}
	if ok, violations := bank.ValidateStructure(); !ok {
		log.Fatalf("question bank is invalid: %s", strings.Join(violations, "; "))
	}
	logger.Info().Int("questions", bank.Count()).Msg("question bank loaded")

	var store session.Store
	if cfg.RedisURL != "" {
		client, err := session.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.SessionTTL, logger)
		logger.Info().Msg("using redis session store")
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		logger.Info().Msg("using in-memory session store")
	}

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	examService := service.NewExamService(bank, store, validate, logger)
	pageHandler := handler.NewExamPageHandler(examService, renderer, cfg.AppName, logger)
	apiHandler := handler.NewExamAPIHandler(examService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{App: cfg, Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ExamPages: pageHandler,
		ExamAPI:   apiHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
