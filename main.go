package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/lingobot/internal/ai"
	"github.com/example/lingobot/internal/bot"
	"github.com/example/lingobot/internal/history"
	"github.com/example/lingobot/internal/scheduler"
	"github.com/example/lingobot/internal/state"
	"github.com/example/lingobot/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	config, err := bot.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, err := storage.Open(config.DataDir, config.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// State containers; load failures keep defaults and are non-fatal
	selected := state.NewLanguageSelection(store)
	if err := selected.Load(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}
	level := state.NewVocabularyLevel(store)
	if err := level.Load(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}
	settings := state.NewNotificationSettings(store)
	if err := settings.Load(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}

	ledger := history.NewLedger(store)
	if selected.IsSelected() {
		if err := ledger.LoadWords(ctx, selected.Code()); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	var gemini *ai.Gemini
	if config.GeminiAPIKey != "" {
		gemini, err = ai.New(config.GeminiAPIKey, config.GeminiAPIURL)
		if err != nil {
			log.Fatalf("Failed to create generation client: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY is not set, /word will be disabled")
	}

	b, err := bot.New(config, store, selected, level, settings, ledger, gemini)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	service := scheduler.NewGocron(b, time.Local)
	defer service.Stop()

	sched := scheduler.New(service, selected, level, settings)
	b.AttachScheduler(sched)

	// Restore the reminder schedule from the persisted settings
	if err := sched.ScheduleNotifications(); err != nil && !errors.Is(err, scheduler.ErrPermissionDenied) {
		log.Printf("Warning: failed to restore notification schedule: %v", err)
	}

	// Shut down on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped successfully")
}
