package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config — конфигурация процесса; загружается один раз при старте
type Config struct {
	BotToken    string
	AdminID     int64
	SupabaseURL string
	SupabaseKey string

	// Необязательные параметры
	SessionsDSN string // SQLite DSN для сессий разбора; пусто — хранить в памяти
	LogFile     string // путь к файлу логов с ротацией; пусто — только stdout
}

// Load читает .env (если есть) и переменные окружения.
// Возвращает ошибку при отсутствии обязательных значений или
// некорректном ADMIN_ID — процесс не должен стартовать.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),
		SessionsDSN: os.Getenv("SESSIONS_SQLITE_DSN"),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("переменная окружения BOT_TOKEN не задана")
	}
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("переменная окружения SUPABASE_URL не задана")
	}
	if cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("переменная окружения SUPABASE_KEY не задана")
	}

	rawAdmin := os.Getenv("ADMIN_ID")
	if rawAdmin == "" {
		return nil, fmt.Errorf("переменная окружения ADMIN_ID не задана")
	}
	adminID, err := strconv.ParseInt(rawAdmin, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("некорректное значение ADMIN_ID: %w", err)
	}
	cfg.AdminID = adminID

	return cfg, nil
}
