package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	OCR        OCRConfig
	Resolver   ResolverConfig
	Dict       DictConfig
	CORS       CORSConfig
	Preprocess PreprocessConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds receipt image storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCREngineConfig holds settings for one remote OCR engine.
type OCREngineConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds OCR engine settings. Tesseract runs in-process; paddle and
// trocr are remote HTTP services.
type OCRConfig struct {
	TesseractLang      string          `mapstructure:"tesseract_lang"`
	Paddle             OCREngineConfig `mapstructure:"paddle"`
	TrOCR              OCREngineConfig `mapstructure:"trocr"`
	SingleModelVersion string          `mapstructure:"single_model_version"`
	MultiModelVersion  string          `mapstructure:"multi_model_version"`
}

// ResolverConfig holds conflict-resolution backend settings.
type ResolverConfig struct {
	Backend      string `mapstructure:"backend"` // stub | httpapi | ollama
	APIURL       string `mapstructure:"api_url"`
	Model        string `mapstructure:"model"`
	ModelVersion string `mapstructure:"model_version"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// DictConfig holds auto-dictionary miner thresholds.
type DictConfig struct {
	MinFrequency int `mapstructure:"min_frequency"`
	MaxLen       int `mapstructure:"max_len"`
	Limit        int `mapstructure:"limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PreprocessConfig holds the optional crop-service settings. An empty URL
// disables preprocessing.
type PreprocessConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from config.yaml (if present) and environment
// variables prefixed with KAKEIBO_.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "kakeibo")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "kakeibo")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("s3.region", "ap-northeast-1")
	v.SetDefault("s3.bucket", "kakeibo-receipts")
	v.SetDefault("s3.max_file_size_mb", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ocr.tesseract_lang", "jpn")
	v.SetDefault("ocr.paddle.url", "")
	v.SetDefault("ocr.paddle.timeout_secs", 30)
	v.SetDefault("ocr.trocr.url", "")
	v.SetDefault("ocr.trocr.timeout_secs", 30)
	v.SetDefault("ocr.single_model_version", "ocr_v1.0.0")
	v.SetDefault("ocr.multi_model_version", "multi_ocr_v1.0.0")

	v.SetDefault("resolver.backend", "stub")
	v.SetDefault("resolver.api_url", "")
	v.SetDefault("resolver.model", "llama3")
	v.SetDefault("resolver.model_version", "stub_v0")
	v.SetDefault("resolver.timeout_secs", 30)

	v.SetDefault("dict.min_frequency", 3)
	v.SetDefault("dict.max_len", 40)
	v.SetDefault("dict.limit", 500)

	v.SetDefault("cors.allowed_origins", "")

	v.SetDefault("preprocess.url", "")
	v.SetDefault("preprocess.timeout_secs", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "KAKEIBO_SERVER_PORT",
		"server.read_timeout":      "KAKEIBO_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "KAKEIBO_SERVER_WRITE_TIMEOUT",
		"server.environment":       "KAKEIBO_SERVER_ENVIRONMENT",
		"db.host":                  "KAKEIBO_DB_HOST",
		"db.port":                  "KAKEIBO_DB_PORT",
		"db.user":                  "KAKEIBO_DB_USER",
		"db.password":              "KAKEIBO_DB_PASSWORD",
		"db.name":                  "KAKEIBO_DB_NAME",
		"db.sslmode":               "KAKEIBO_DB_SSLMODE",
		"db.max_open":              "KAKEIBO_DB_MAX_OPEN",
		"db.max_idle":              "KAKEIBO_DB_MAX_IDLE",
		"s3.region":                "KAKEIBO_S3_REGION",
		"s3.bucket":                "KAKEIBO_S3_BUCKET",
		"s3.endpoint":              "KAKEIBO_S3_ENDPOINT",
		"s3.access_key":            "KAKEIBO_S3_ACCESS_KEY",
		"s3.secret_key":            "KAKEIBO_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "KAKEIBO_S3_MAX_FILE_SIZE_MB",
		"log.level":                "KAKEIBO_LOG_LEVEL",
		"log.format":               "KAKEIBO_LOG_FORMAT",
		"ocr.tesseract_lang":       "KAKEIBO_OCR_TESSERACT_LANG",
		"ocr.paddle.url":           "KAKEIBO_OCR_PADDLE_URL",
		"ocr.paddle.timeout_secs":  "KAKEIBO_OCR_PADDLE_TIMEOUT_SECS",
		"ocr.trocr.url":            "KAKEIBO_OCR_TROCR_URL",
		"ocr.trocr.timeout_secs":   "KAKEIBO_OCR_TROCR_TIMEOUT_SECS",
		"ocr.single_model_version": "KAKEIBO_OCR_SINGLE_MODEL_VERSION",
		"ocr.multi_model_version":  "KAKEIBO_OCR_MULTI_MODEL_VERSION",
		"resolver.backend":         "KAKEIBO_RESOLVER_BACKEND",
		"resolver.api_url":         "KAKEIBO_RESOLVER_API_URL",
		"resolver.model":           "KAKEIBO_RESOLVER_MODEL",
		"resolver.model_version":   "KAKEIBO_RESOLVER_MODEL_VERSION",
		"resolver.timeout_secs":    "KAKEIBO_RESOLVER_TIMEOUT_SECS",
		"dict.min_frequency":       "KAKEIBO_DICT_MIN_FREQUENCY",
		"dict.max_len":             "KAKEIBO_DICT_MAX_LEN",
		"dict.limit":               "KAKEIBO_DICT_LIMIT",
		"cors.allowed_origins":     "KAKEIBO_CORS_ALLOWED_ORIGINS",
		"preprocess.url":           "KAKEIBO_PREPROCESS_URL",
		"preprocess.timeout_secs":  "KAKEIBO_PREPROCESS_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it if KAKEIBO_SERVER_PORT is
	// not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KAKEIBO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		TesseractLang: v.GetString("ocr.tesseract_lang"),
		Paddle: OCREngineConfig{
			URL:         v.GetString("ocr.paddle.url"),
			TimeoutSecs: v.GetInt("ocr.paddle.timeout_secs"),
		},
		TrOCR: OCREngineConfig{
			URL:         v.GetString("ocr.trocr.url"),
			TimeoutSecs: v.GetInt("ocr.trocr.timeout_secs"),
		},
		SingleModelVersion: v.GetString("ocr.single_model_version"),
		MultiModelVersion:  v.GetString("ocr.multi_model_version"),
	}
	cfg.Resolver = ResolverConfig{
		Backend:      v.GetString("resolver.backend"),
		APIURL:       v.GetString("resolver.api_url"),
		Model:        v.GetString("resolver.model"),
		ModelVersion: v.GetString("resolver.model_version"),
		TimeoutSecs:  v.GetInt("resolver.timeout_secs"),
	}
	cfg.Dict = DictConfig{
		MinFrequency: v.GetInt("dict.min_frequency"),
		MaxLen:       v.GetInt("dict.max_len"),
		Limit:        v.GetInt("dict.limit"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Preprocess = PreprocessConfig{
		URL:         v.GetString("preprocess.url"),
		TimeoutSecs: v.GetInt("preprocess.timeout_secs"),
	}

	return cfg, nil
}
