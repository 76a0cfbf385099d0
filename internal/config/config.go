package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"cvscreen/dreamteam/internal/logger"
)

const (
	StorageBackendFilesystem = "filesystem"
	StorageBackendPostgres   = "postgres"

	LLMProviderGemini = "gemini"
	LLMProviderLocal  = "local"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Ranking  RankingConfig
}

type ServerConfig struct {
	Port     string `env:"PORT" envDefault:"3000"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DatabaseConfig is only consulted when the postgres storage backend is selected.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"dream_team"`
}

type StorageConfig struct {
	Backend        string        `env:"STORAGE_BACKEND" envDefault:"filesystem"`
	UploadPath     string        `env:"UPLOAD_PATH" envDefault:"./inputs"`
	MaxFileSize    int64         `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	SofficePath    string        `env:"SOFFICE_PATH" envDefault:"soffice"`
	ConvertTimeout time.Duration `env:"CONVERT_TIMEOUT" envDefault:"60s"`
}

type LLMConfig struct {
	Provider     string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	LocalURL     string        `env:"LOCAL_LLM_URL" envDefault:"http://localhost:8080/v1"`
	LocalModel   string        `env:"LOCAL_LLM_MODEL" envDefault:"Meta-Llama-3-8B-Instruct"`
	LocalAPIKey  string        `env:"LOCAL_LLM_API_KEY"`
	LocalTimeout time.Duration `env:"LOCAL_LLM_TIMEOUT" envDefault:"120s"`
}

type RankingConfig struct {
	// Concurrency of 1 keeps candidate processing strictly sequential.
	Concurrency int `env:"RANK_CONCURRENCY" envDefault:"1"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found. Using environment and default values.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageBackendFilesystem, StorageBackendPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	switch c.LLM.Provider {
	case LLMProviderGemini, LLMProviderLocal:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}

	if c.Ranking.Concurrency < 1 {
		c.Ranking.Concurrency = 1
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
