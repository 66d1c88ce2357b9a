// Package config carrega a configuração do processo a partir de variáveis de ambiente.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"port":                 "8000",
	"gemini_api_key":       "",
	"gemini_model":         "gemini-2.5-flash",
	"generation_timeout":   15 * time.Second,
	"max_message_length":   1000,
	"cors_allowed_origins": []string{"*"},
	"log_level":            "info",
	"log_format":           "json",
	"persona_file":         "",
	"mcp_enabled":          true,
	"request_timeout":      60 * time.Second,
	"shutdown_timeout":     5 * time.Second,
}

// Config reúne a configuração do processo. É lida uma vez na inicialização e
// não muda depois disso.
type Config struct {
	Port               string        `mapstructure:"port"                 validate:"required,numeric"`
	GeminiAPIKey       string        `mapstructure:"gemini_api_key"`
	GeminiModel        string        `mapstructure:"gemini_model"         validate:"required"`
	GenerationTimeout  time.Duration `mapstructure:"generation_timeout"   validate:"min=1s,max=5m"`
	MaxMessageLength   int           `mapstructure:"max_message_length"   validate:"min=1,max=100000"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins" validate:"min=1,dive,required"`
	LogLevel           string        `mapstructure:"log_level"            validate:"oneof=debug info warn error"`
	LogFormat          string        `mapstructure:"log_format"           validate:"oneof=json text"`
	PersonaFile        string        `mapstructure:"persona_file"`
	MCPEnabled         bool          `mapstructure:"mcp_enabled"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"      validate:"min=1s,max=10m"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"     validate:"min=1s,max=5m"`
}

// Load lê os valores padrão e as variáveis de ambiente (PORT, GEMINI_API_KEY, ...)
// e valida o resultado. A ausência de GEMINI_API_KEY é válida: o serviço roda
// somente com respostas de fallback.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.GeminiAPIKey = strings.TrimSpace(c.GeminiAPIKey)
	c.GeminiModel = strings.TrimSpace(c.GeminiModel)
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.PersonaFile = strings.TrimSpace(c.PersonaFile)

	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSAllowedOrigins = origins
}

// GenerationEnabled indica se há credencial para o Gemini
func (c *Config) GenerationEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return ":" + c.Port
}
