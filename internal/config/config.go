package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Значения по умолчанию для флагов командной строки
const (
	DefaultModel         = "tts_models/multilingual/multi-dataset/your_tts"
	DefaultOutputDir     = "outputs"
	DefaultLanguage      = "en"
	DefaultAdvancedLangs = "en,fr-fr,pt-br"
	DefaultSpeakerWav    = "sample_voice.wav"
	DefaultInputCSV      = "input.csv"
)

// Config содержит все конфигурационные параметры приложения
type Config struct {
	TTS     TTSConfig
	App     AppConfig
	Metrics MetricsConfig
}

// TTSConfig содержит настройки движка синтеза
type TTSConfig struct {
	Engine         string // coqui, server, noop
	BinPath        string // явный путь к бинарю tts
	ServerURL      string
	TimeoutSeconds int // 0 - синтез без ограничения по времени
}

type AppConfig struct {
	Env      string
	LogLevel string
}

// MetricsConfig содержит настройки HTTP сервера метрик
type MetricsConfig struct {
	Addr string // пустая строка - сервер метрик выключен
}

// Load загружает конфигурацию из переменных окружения и .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// TTS
	cfg.TTS.Engine = getEnvDefault("TTS_ENGINE", "coqui")
	cfg.TTS.BinPath = os.Getenv("TTS_BIN")
	cfg.TTS.ServerURL = getEnvDefault("TTS_SERVER_URL", "http://localhost:5002")
	cfg.TTS.TimeoutSeconds = getEnvIntDefault("TTS_TIMEOUT_SECONDS", 0)

	// App
	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")

	// Metrics
	cfg.Metrics.Addr = os.Getenv("METRICS_ADDR")

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	switch config.TTS.Engine {
	case "coqui", "server", "noop":
	default:
		return fmt.Errorf("поддерживаются только TTS_ENGINE: coqui, server, noop")
	}
	if config.TTS.Engine == "server" && config.TTS.ServerURL == "" {
		return fmt.Errorf("TTS_SERVER_URL не установлен")
	}
	if config.TTS.TimeoutSeconds < 0 {
		return fmt.Errorf("TTS_TIMEOUT_SECONDS не может быть отрицательным")
	}

	return nil
}

// IsDevelopment проверяет, запущено ли приложение в режиме разработки
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction проверяет, запущено ли приложение в продакшн режиме
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetLogLevel возвращает уровень логирования в формате zap
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
