package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvFiles файлы окружения, первый найденный загружается.
// Уже заданные переменные окружения не перезаписываются.
var EnvFiles = []string{".env", "../.env", "../../.env"}

type Config struct {
	Port            string
	GRPCPort        string // пусто: gRPC health-сервер не запускается
	LogLevel        string
	LogFormat       string
	HistoryDSN      string
	HistoryLimit    int
	ShutdownTimeout time.Duration
}

// HTTPAddr адрес для http.Server
func (c *Config) HTTPAddr() string {
	return ":" + c.Port
}

func (c *Config) GRPCAddr() string {
	if c.GRPCPort == "" {
		return ""
	}
	return ":" + c.GRPCPort
}

// LoadEnvFiles загружает первый существующий файл из EnvFiles и возвращает его имя
func LoadEnvFiles() string {
	for _, file := range EnvFiles {
		if err := godotenv.Load(file); err == nil {
			return file
		}
	}
	return ""
}

// Load читает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	LoadEnvFiles()
	return FromEnv()
}

// FromEnv читает конфигурацию только из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:       getEnvOrDefault("PORT", "10000"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),
		HistoryDSN: getEnvOrDefault("HISTORY_DSN", ":memory:"),
	}

	// GRPC_PORT="" явно отключает gRPC, отсутствие переменной даёт порт по умолчанию
	if value, ok := os.LookupEnv("GRPC_PORT"); ok {
		cfg.GRPCPort = value
	} else {
		cfg.GRPCPort = "10001"
	}

	var err error
	cfg.HistoryLimit, err = strconv.Atoi(getEnvOrDefault("HISTORY_LIMIT", "50"))
	if err != nil || cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("invalid HISTORY_LIMIT: %q", os.Getenv("HISTORY_LIMIT"))
	}

	cfg.ShutdownTimeout, err = time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %q", os.Getenv("SHUTDOWN_TIMEOUT"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет порты, например после переопределения флагами
func (c *Config) Validate() error {
	if err := validatePort("PORT", c.Port); err != nil {
		return err
	}
	if c.GRPCPort != "" {
		if err := validatePort("GRPC_PORT", c.GRPCPort); err != nil {
			return err
		}
	}
	return nil
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid %s: %q", name, value)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
