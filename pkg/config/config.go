package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anonto42/postcraft/backend/internal/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultJWTSecret only serves local development
const defaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string `yaml:"port"`
	Env                     string `yaml:"env"`
	LogLevel                string `yaml:"log_level"`
	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`
	PostgresConnStr         string `yaml:"postgres_conn_str"`
	MongoURI                string `yaml:"mongo_uri"`
	MongoDatabase           string `yaml:"mongo_database"`
	JWTSecret               string `yaml:"jwt_secret"`

	LLM                     llm.Settings `yaml:"llm"`
	LLMTimeoutSeconds       int          `yaml:"llm_timeout_seconds"`
	GenerationRatePerMinute int          `yaml:"generation_rate_per_minute"`
}

// Default returns the configuration used when neither file nor env sets a value
func Default() *Config {
	return &Config{
		Port:                    "8080",
		Env:                     "development",
		LogLevel:                "info",
		FirebaseCredentialsPath: "./firebase_credentials.json",
		MongoDatabase:           "postcraft",
		JWTSecret:               defaultJWTSecret,
		LLM:                     llm.Settings{Provider: "mock"},
		LLMTimeoutSeconds:       60,
		GenerationRatePerMinute: 10,
	}
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE, then env vars.
// Env vars win over the file.
func Load() (*Config, error) {
	// Missing .env is fine; variables may come from the environment
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if !cfg.IsDevelopment() && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when ENV is %q", cfg.Env)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", c.FirebaseCredentialsPath)
	c.PostgresConnStr = getEnv("POSTGRES_CONN_STR", c.PostgresConnStr)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGO_DATABASE", c.MongoDatabase)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)

	c.LLM.Provider = getEnv("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.APIKey = getEnv("LLM_API_KEY", c.LLM.APIKey)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)

	var err error
	if c.LLMTimeoutSeconds, err = getEnvInt("LLM_TIMEOUT_SECONDS", c.LLMTimeoutSeconds); err != nil {
		return err
	}
	if c.GenerationRatePerMinute, err = getEnvInt("GENERATION_RATE_PER_MINUTE", c.GenerationRatePerMinute); err != nil {
		return err
	}
	return nil
}

// LLMTimeout is the deadline applied to a single model call
func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
