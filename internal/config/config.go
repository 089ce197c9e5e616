package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates the client and stub-server settings.
type Config struct {
	Client ClientConfig
	Server ServerConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Client: client, Server: server}, nil
}

// ClientConfig describes how the terminal client reaches the backend.
type ClientConfig struct {
	BackendURL          string
	UserID              string
	TopK                int
	Timeout             time.Duration
	LogFile             string
	IncludeExplanations bool
}

func loadClientConfig() (ClientConfig, error) {
	topK := 10
	if override, err := parseOptionalIntEnv("SHOP_TOP_K"); err != nil {
		return ClientConfig{}, err
	} else if override != nil {
		if *override < 1 || *override > 50 {
			return ClientConfig{}, fmt.Errorf("SHOP_TOP_K must be between 1 and 50, got %d", *override)
		}
		topK = *override
	}

	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("SHOP_HTTP_TIMEOUT"); err != nil {
		return ClientConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ClientConfig{}, fmt.Errorf("SHOP_HTTP_TIMEOUT must be positive, got %d", *override)
		}
		timeoutSeconds = *override
	}

	explanations, err := parseBoolEnv("SHOP_EXPLANATIONS", true)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		BackendURL:          getEnvOrDefault("SHOP_BACKEND_URL", "http://localhost:8000"),
		UserID:              strings.TrimSpace(os.Getenv("SHOP_USER_ID")),
		TopK:                topK,
		Timeout:             time.Duration(timeoutSeconds) * time.Second,
		LogFile:             strings.TrimSpace(os.Getenv("SHOP_LOG_FILE")),
		IncludeExplanations: explanations,
	}, nil
}

// ServerConfig describes the stub backend's listen address.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// Accept ":8000" or "127.0.0.1:8000" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
