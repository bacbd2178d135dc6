package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents pricing engine configuration
type EngineConfig struct {
	DefaultSteps int `yaml:"default_steps"` // tree depth when a request omits one
	MaxSteps     int `yaml:"max_steps"`     // request-level cap, HTTP layer only
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Engine settings
	Engine EngineConfig `yaml:"engine"`
}

type yamlConfig struct {
	Port    string        `yaml:"port"`
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
}

const (
	defaultSteps = 300
	maxSteps     = 5000
)

// Load builds the configuration from defaults, config.yaml (when present)
// and environment overrides, in that order of precedence (env wins).
func Load() *Config {
	cfg := &Config{
		Port: "8080",
		Logging: LoggingConfig{
			LogLevel: "info",
			LogFile:  "lattice.log",
		},
		Engine: EngineConfig{
			DefaultSteps: defaultSteps,
			MaxSteps:     maxSteps,
		},
	}

	if yamlCfg, err := loadYAMLConfig("config.yaml"); err == nil && yamlCfg != nil {
		if yamlCfg.Port != "" {
			cfg.Port = yamlCfg.Port
		}
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
		if yamlCfg.Engine.DefaultSteps > 0 {
			cfg.Engine.DefaultSteps = yamlCfg.Engine.DefaultSteps
		}
		if yamlCfg.Engine.MaxSteps > 0 {
			cfg.Engine.MaxSteps = yamlCfg.Engine.MaxSteps
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Logging.LogLevel = getEnv("LOG_LEVEL", cfg.Logging.LogLevel)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)
	cfg.Engine.DefaultSteps = getEnvInt("ENGINE_DEFAULT_STEPS", cfg.Engine.DefaultSteps)
	cfg.Engine.MaxSteps = getEnvInt("ENGINE_MAX_STEPS", cfg.Engine.MaxSteps)

	return cfg
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Missing config file is not an error; defaults apply.
		return nil, nil
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &yamlCfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
