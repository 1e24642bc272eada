package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"market-simulator/src/helpers"
	"market-simulator/src/models"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides applied after the YAML file
const (
	EnvHost       = "MARKETSIM_HOST"
	EnvPort       = "MARKETSIM_PORT"
	EnvGrpcPort   = "MARKETSIM_GRPC_PORT"
	EnvLogLevel   = "MARKETSIM_LOG_LEVEL"
	EnvRandomSeed = "MARKETSIM_RANDOM_SEED"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "market-simulator",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "INFO",
		GrpcHost: "127.0.0.1",
		GrpcPort: 50051,
		Simulation: models.MSimulationConfig{
			SearchDelayMs: 200,
		},
		Dashboard: models.MDashboardConfig{
			UpdateIntervalSeconds: 2,
			SelectedAsset:         "BTC/USD",
			ChartPoints:           50,
			SearchDebounceMs:      300,
			SearchMinLength:       2,
			Currency:              money.USD,
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig creates a Config from a YAML file. An empty path yields Default().
// A .env file next to the working directory is loaded before overrides apply.
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		// 1. Read the YAML file content
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
		}

		// 2. Unmarshal over the defaults so omitted keys keep their value
		if err := yaml.Unmarshal(data, config.MConfig); err != nil {
			return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
		}
	}

	// 3. Environment
	if err := loadDotEnv(".env"); err != nil {
		return nil, helpers.NewConfigurationError("failed to load .env", err)
	}
	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, helpers.NewConfigurationError("invalid environment override", err)
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides fields from environment variables read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := getenv(EnvPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Port = p
	}
	if v := getenv(EnvGrpcPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGrpcPort, err)
		}
		c.GrpcPort = p
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToUpper(v)
	}
	if v := getenv(EnvRandomSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRandomSeed, err)
		}
		c.Simulation.RandomSeed = seed
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d (must be 0 or between 1025 and 65535)", c.GrpcPort)
	}

	// Simulation
	if c.Simulation.SearchDelayMs < 0 {
		return fmt.Errorf("search delay cannot be negative")
	}

	// Dashboard
	d := c.Dashboard
	if d.UpdateIntervalSeconds <= 0 {
		return fmt.Errorf("update interval must be greater than 0")
	}
	if d.ChartPoints <= 0 {
		return fmt.Errorf("chart points must be greater than 0")
	}
	if d.SearchDebounceMs < 0 {
		return fmt.Errorf("search debounce cannot be negative")
	}
	if d.SearchMinLength < 0 {
		return fmt.Errorf("search min length cannot be negative")
	}
	if d.SelectedAsset == "" {
		return fmt.Errorf("selected asset cannot be empty")
	}
	if money.GetCurrency(d.Currency) == nil {
		return fmt.Errorf("unknown currency '%s'", d.Currency)
	}
	for i, w := range d.Watchlist {
		if w.Symbol == "" {
			return fmt.Errorf("watchlist entry %d must have a symbol", i)
		}
		if w.Holdings < 0 {
			return fmt.Errorf("watchlist entry '%s' has negative holdings", w.Symbol)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
