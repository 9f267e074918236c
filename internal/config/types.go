package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigClient настройки клиента удаленного хранилища заметок
type ConfigClient struct {
	BaseURL        string `mapstructure:"base_url"`
	RequestTimeout int    `mapstructure:"request_timeout"` // секунды, 0 - без таймаута
	RateLimitRPS   int    `mapstructure:"rate_limit_rps"`  // 0 - без ограничения
	RateLimitBurst int    `mapstructure:"rate_limit_burst"`
}

// ConfigServer настройки справочного сервиса заметок
type ConfigServer struct {
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigHTTP настройки HTTP middleware сервиса
type ConfigHTTP struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// Config основная структура конфигурации
type Config struct {
	Logger *ConfigLogger `mapstructure:"logger"`
	Client *ConfigClient `mapstructure:"client"`
	Server *ConfigServer `mapstructure:"server"`
	HTTP   *ConfigHTTP   `mapstructure:"http"`
}

// Defaults значения по умолчанию для всех ключей конфигурации
func Defaults() map[string]any {
	return map[string]any{
		"logger.level": "info",

		"client.base_url":         "http://localhost:5000",
		"client.request_timeout":  10,
		"client.rate_limit_rps":   0,
		"client.rate_limit_burst": 0,

		"server.port_http":                 5000,
		"server.http_read_timeout":         15,
		"server.http_write_timeout":        15,
		"server.http_idle_timeout":         60,
		"server.http_read_header_timeout":  5,
		"server.graceful_shutdown_timeout": 10,

		"http.cors_allowed_origins": "http://localhost:3000",
		"http.cors_max_age":         86400,
		"http.rate_limit_rps":       100,
		"http.rate_limit_burst":     10,
	}
}

// Validate проверяет конфигурацию после загрузки
func (c *Config) Validate() error {
	if c.Client == nil || c.Server == nil || c.HTTP == nil || c.Logger == nil {
		return fmt.Errorf("config: missing section")
	}

	u, err := url.Parse(strings.TrimSpace(c.Client.BaseURL))
	if err != nil {
		return fmt.Errorf("config: client.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: client.base_url must be http(s), got %q", c.Client.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("config: client.base_url has no host: %q", c.Client.BaseURL)
	}

	if c.Server.PortHTTP < 0 || c.Server.PortHTTP > 65535 {
		return fmt.Errorf("config: server.port_http out of range: %d", c.Server.PortHTTP)
	}

	return nil
}
