package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weekly_toast_bot/internal/app"
	"weekly_toast_bot/internal/infra/config"
	idb "weekly_toast_bot/internal/infra/database"
	"weekly_toast_bot/internal/infra/llm"
	"weekly_toast_bot/internal/infra/logger"
	"weekly_toast_bot/internal/infra/scheduler"
	"weekly_toast_bot/internal/infra/speech"
	"weekly_toast_bot/internal/infra/storage"
	"weekly_toast_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLog := logger.Get().WithField("component", "main")
	mainLog.Infof("Configuration loaded. Environment: %s, Admin ID: %d", cfg.Environment, cfg.AdminTelegramID)

	// Database connection and migrations. Migrations run before anything
	// else so the pipeline can assume the full schema.
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLog.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := idb.RunMigrations(migrateCtx, db); err != nil {
		cancelMigrate()
		mainLog.Fatalf("FATAL: Could not run database migrations: %v", err)
	}
	cancelMigrate()
	mainLog.Info("Database connection established and migrations applied.")

	// Repositories
	userRepo := idb.NewPostgresUserRepository(db)
	noteRepo := idb.NewPostgresNoteRepository(db)
	toastRepo := idb.NewPostgresToastRepository(db)
	activityRepo := idb.NewPostgresActivityRepository(db)

	// Provider clients. Language and speech are optional: without keys the
	// pipeline degrades to templated text / no narration.
	var languageClient *llm.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		languageClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITimeout)
	} else {
		mainLog.Warn("OPENAI_API_KEY not set; toasts will use templated fallback text only.")
	}
	var speechClient *speech.ElevenLabsClient
	if cfg.SpeechAPIKey != "" {
		speechClient = speech.NewElevenLabsClient(cfg.SpeechAPIKey, cfg.SpeechBaseURL, cfg.SpeechTimeout)
	} else {
		mainLog.Warn("ELEVENLABS_API_KEY not set; toasts will not be narrated.")
	}

	localStore := storage.NewLocalDiskStore(cfg.PublicAudioDir, cfg.PublicBaseURL)
	var audioStore = storage.NewFallbackStore(nil, localStore, logger.Get().WithField("component", "storage"))
	if cfg.StorageUploadURL != "" {
		httpStore := storage.NewHTTPObjectStore(cfg.StorageUploadURL, cfg.StorageAuthToken, cfg.PublicBaseURL)
		audioStore = storage.NewFallbackStore(httpStore, localStore, logger.Get().WithField("component", "storage"))
	}

	// Leave Language/Speech unset when unconfigured so the interface fields stay nil.
	deps := app.ToastServiceDeps{
		Users:    userRepo,
		Notes:    noteRepo,
		Toasts:   toastRepo,
		Activity: activityRepo,
		Storage:  audioStore,
		Logger:   logger.Get().WithField("component", "toast_service"),
	}
	if languageClient != nil {
		deps.Language = languageClient
	}
	if speechClient != nil {
		deps.Speech = speechClient
	}
	toastService := app.NewToastService(deps)
	adminService := app.NewAdminService(toastService, cfg.AdminTelegramID)

	// Admin bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLog.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	botCtx, cancelBot := context.WithCancel(context.Background())
	defer cancelBot()
	telegram.RegisterAdminHandlers(botCtx, bot, adminService, cfg.AdminTelegramID, logger.Get().WithField("component", "admin_handlers"))
	notifier := telegram.NewTelebotAdapter(bot)

	// Scheduler
	toastScheduler := scheduler.NewToastScheduler(
		toastService,
		notifier,
		cfg.AdminTelegramID,
		logger.Get().WithField("component", "scheduler"),
		cfg.CronSpecToastCheck,
	)
	if err := toastScheduler.Start(); err != nil {
		mainLog.Fatalf("FATAL: Could not start toast scheduler: %v", err)
	}

	mainLog.Info("Application setup complete. Bot and scheduler are starting...")
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLog.Info("Shutting down application...")
	toastScheduler.Stop()
	cancelBot()
	bot.Stop()
	mainLog.Info("Application shut down gracefully.")
}
