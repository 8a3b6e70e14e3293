package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	InstanceID         string
}

type DatabaseConfig struct {
	Connection string
}

type ChatConfig struct {
	HeartbeatInterval time.Duration
	PresenceWindow    time.Duration
	OnlinePollEvery   time.Duration
	HistoryLimit      int

	// "postgres" (default, survives restarts and multi-instance) or "memory"
	// (single instance, zero setup).
	PresenceBackend string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			InstanceID:         getEnv("INSTANCE_ID", hostnameOrDefault()),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Chat: ChatConfig{
			HeartbeatInterval: getEnvAsDuration("CHAT_HEARTBEAT_INTERVAL", 30*time.Second),
			PresenceWindow:    getEnvAsDuration("CHAT_PRESENCE_WINDOW", 60*time.Second),
			OnlinePollEvery:   getEnvAsDuration("CHAT_ONLINE_POLL_INTERVAL", 10*time.Second),
			HistoryLimit:      getEnvAsInt("CHAT_HISTORY_LIMIT", 50),
			PresenceBackend:   getEnv("CHAT_PRESENCE_BACKEND", "postgres"),
		},
	}
}

func hostnameOrDefault() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "lexcircle-1"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
