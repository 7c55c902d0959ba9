package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gopkg.in/natefinch/lumberjack.v2"

	telegramAdapter "lead-triage-telegram-bot/internal/adapter/telegram"
	"lead-triage-telegram-bot/internal/config"
	"lead-triage-telegram-bot/internal/infra/memory"
	sqliteRepo "lead-triage-telegram-bot/internal/infra/sqlite"
	"lead-triage-telegram-bot/internal/infra/supabase"
	"lead-triage-telegram-bot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logger := newLogger(cfg.LogFile)

	go func() {
		_ = http.ListenAndServe(":8080", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка создания бота: %v", err)
	}
	bot.Debug = false
	logger.Info("авторизован", "username", bot.Self.UserName)

	store := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)

	var sessions usecase.SessionStore
	if cfg.SessionsDSN != "" {
		repo, err := sqliteRepo.NewSessionRepo(cfg.SessionsDSN, logger)
		if err != nil {
			log.Fatalf("sessions sqlite init error: %v", err)
		}
		sessions = repo
	} else {
		sessions = memory.NewSessionRepo()
	}

	review := usecase.NewReview(sessions)
	stats := usecase.NewStats(store)

	handler := telegramAdapter.NewHandler(bot, store, store, review, stats, cfg.AdminID, logger)
	handler.Run()
}

func newLogger(logFile string) *slog.Logger {
	var w io.Writer = os.Stdout
	if logFile != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		})
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
