package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"fma"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fma"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	OpenAI struct {
		Key             string `envconfig:"OPENAI_API_KEY"`
		KeyBackup1      string `envconfig:"OPENAI_API_KEY_BACKUP_1"`
		KeyBackup2      string `envconfig:"OPENAI_API_KEY_BACKUP_2"`
		KeyBackup3      string `envconfig:"OPENAI_API_KEY_BACKUP_3"`
		PreferredSource string `envconfig:"OPENAI_PREFERRED_KEY_SOURCE" default:"OPENAI_API_KEY"`
		Model           string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-nano"`
		BaseURL         string `envconfig:"OPENAI_BASE_URL"`
	}

	Encrypt struct {
		Key string `envconfig:"PLAN_ENCRYPTION_KEY"`
	}

	Currency struct {
		APIKey  string `envconfig:"CURRENCY_API_KEY"`
		BaseURL string `envconfig:"CURRENCY_BASE_URL"`
	}
}

// APIKey is one configured OpenAI credential with the variable it came from.
type APIKey struct {
	Source string
	Key    string
}

// OpenAIKeys returns the configured keys in fallback order: the preferred
// source first, then the remaining ones in declaration order. Unset keys are
// dropped.
func (c *Config) OpenAIKeys() []APIKey {
	all := []APIKey{
		{Source: "OPENAI_API_KEY", Key: c.OpenAI.Key},
		{Source: "OPENAI_API_KEY_BACKUP_1", Key: c.OpenAI.KeyBackup1},
		{Source: "OPENAI_API_KEY_BACKUP_2", Key: c.OpenAI.KeyBackup2},
		{Source: "OPENAI_API_KEY_BACKUP_3", Key: c.OpenAI.KeyBackup3},
	}

	ordered := make([]APIKey, 0, len(all))

	for _, k := range all {
		if k.Source == c.OpenAI.PreferredSource && k.Key != "" {
			ordered = append(ordered, k)
		}
	}

	for _, k := range all {
		if k.Source != c.OpenAI.PreferredSource && k.Key != "" {
			ordered = append(ordered, k)
		}
	}

	return ordered
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
