package docweave

import (
	"errors"
	"os"
	"strconv"
	"sync"
)

// Config contains configuration options for the docweave engine.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error, off).
	LogLevel string
	// MaxDepth bounds the nesting depth of block regions during
	// resolution. Regions nested deeper than this are reported as
	// structural errors instead of being expanded.
	MaxDepth int
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func initGlobalConfig() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		MaxDepth: 100,
	}
}

// ConfigFromEnvironment creates a configuration from environment
// variables (DOCWEAVE_LOG_LEVEL, DOCWEAVE_MAX_DEPTH), falling back to
// defaults for anything unset or unparsable.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCWEAVE_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("DOCWEAVE_MAX_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxDepth = depth
		}
	}

	return config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxDepth <= 0 {
		return errors.New("max depth must be positive")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration.
func GetGlobalConfig() *Config {
	initGlobalConfig()

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config *Config) {
	initGlobalConfig()

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}
