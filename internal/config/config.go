package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Gateway GatewayConfig
	Logger  LoggerConfig
}

// GatewayConfig holds payment gateway configuration
type GatewayConfig struct {
	BaseURL      string // Gateway REST endpoint (e.g. https://engine.paymentgate.ru/payment/rest)
	Login        string // Merchant API login
	Password     string // Merchant API password
	ReturnURL    string // Redirect target after payment, optional
	SuccessCode  int    // Action code reported for an approved payment
	CreatedCodes []int  // Action codes for a registered, not yet paid order
	Timeout      int    // Request timeout in seconds
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	createdCodes, err := getEnvAsIntSlice("ALFABANK_CREATED_CODES", []int{-100})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Gateway: GatewayConfig{
			BaseURL:      getEnv("ALFABANK_BASE_URL", "https://engine.paymentgate.ru/payment/rest"),
			Login:        getEnv("ALFABANK_LOGIN", ""),
			Password:     getEnv("ALFABANK_PASSWORD", ""),
			ReturnURL:    getEnv("ALFABANK_RETURN_URL", ""),
			SuccessCode:  getEnvAsInt("ALFABANK_SUCCESS_CODE", 0),
			CreatedCodes: createdCodes,
			Timeout:      getEnvAsInt("ALFABANK_TIMEOUT", 30),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if cfg.Gateway.Login == "" {
		return nil, fmt.Errorf("ALFABANK_LOGIN is required")
	}
	if cfg.Gateway.Password == "" {
		return nil, fmt.Errorf("ALFABANK_PASSWORD is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsIntSlice parses a comma-separated list of integers.
func getEnvAsIntSlice(key string, fallback []int) ([]int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parts := strings.Split(value, ",")
	codes := make([]int, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid code %q", key, part)
		}
		codes = append(codes, parsed)
	}
	return codes, nil
}
