// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads server configuration from YAML with environment
// variable expansion and overrides.
package config

import (
	"bytes"
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/docquery/ai"
)

// Duration decodes Go duration strings ("24h", "30m") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// AI holds the AI service settings.
type AI struct {
	EmbeddingHost   string  `yaml:"embedding_host"`
	ChatHost        string  `yaml:"chat_host"`
	EmbeddingModel  string  `yaml:"embedding_model"`
	ChatModel       string  `yaml:"chat_model"`
	APIKey          string  `yaml:"api_key"`
	MaxAnswerTokens int     `yaml:"max_answer_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

// Config holds the full server configuration.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address"`

	// DatabasePath is the BadgerDB directory.
	DatabasePath string `yaml:"database_path"`

	// JWTSecret signs session tokens. Override with DOCQUERY_JWT_SECRET.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is how long session tokens stay valid.
	TokenTTL Duration `yaml:"token_ttl"`

	// AllowedOrigins configures CORS. Defaults to all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	AI AI `yaml:"ai"`
}

// Default returns a configuration with working defaults for local use.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Address:        ":8080",
		DatabasePath:   "./data",
		JWTSecret:      "",
		TokenTTL:       Duration(7 * 24 * time.Hour),
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		AI: AI{
			EmbeddingHost:   aiDefaults.EmbeddingHost,
			ChatHost:        aiDefaults.ChatHost,
			EmbeddingModel:  aiDefaults.EmbeddingModel,
			ChatModel:       aiDefaults.ChatModel,
			APIKey:          aiDefaults.APIKey,
			MaxAnswerTokens: aiDefaults.MaxAnswerTokens,
			Temperature:     aiDefaults.Temperature,
		},
	}
}

// Parse loads configuration from a YAML file on top of the defaults.
// Environment variables referenced in the file ($VAR or ${VAR}) are
// expanded before decoding, and ApplyEnv overrides run afterwards.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies well-known environment variable overrides:
// OPENAI_API_KEY for the AI services and DOCQUERY_JWT_SECRET for
// token signing.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.AI.APIKey = key
	}
	if secret := os.Getenv("DOCQUERY_JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("config: address is required")
	}
	if c.DatabasePath == "" {
		return errors.New("config: database_path is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: jwt_secret is required (or set DOCQUERY_JWT_SECRET)")
	}
	return c.AIConfig().Validate()
}

// AIConfig converts the AI section into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithChatHost(c.AI.ChatHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithChatModel(c.AI.ChatModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithMaxAnswerTokens(c.AI.MaxAnswerTokens),
		ai.WithTemperature(c.AI.Temperature),
	)
}
