package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIKeys_PreferredFirst(t *testing.T) {
	var cfg Config
	cfg.OpenAI.Key = "k0"
	cfg.OpenAI.KeyBackup1 = "k1"
	cfg.OpenAI.KeyBackup3 = "k3"
	cfg.OpenAI.PreferredSource = "OPENAI_API_KEY_BACKUP_1"

	keys := cfg.OpenAIKeys()
	assert.Equal(t, []APIKey{
		{Source: "OPENAI_API_KEY_BACKUP_1", Key: "k1"},
		{Source: "OPENAI_API_KEY", Key: "k0"},
		{Source: "OPENAI_API_KEY_BACKUP_3", Key: "k3"},
	}, keys)
}

func TestOpenAIKeys_NoneConfigured(t *testing.T) {
	var cfg Config
	cfg.OpenAI.PreferredSource = "OPENAI_API_KEY"

	assert.Empty(t, cfg.OpenAIKeys())
}
