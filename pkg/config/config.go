package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dev/bravebird/ui-check-go/pkg/models"
)

// Config holds service configuration, loaded from an optional YAML file with
// environment variable overrides.
type Config struct {
	Port          string `yaml:"port"`
	MySQLDSN      string `yaml:"mysql_dsn"`
	TemporalHost  string `yaml:"temporal_host"`
	TargetURL     string `yaml:"target_url"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	ChromeBin     string `yaml:"chrome_bin"`
	Headless      bool   `yaml:"headless"`

	// Extra suites beyond the built-in theme suite
	Suites []models.CheckSuite `yaml:"suites"`
}

// Default returns the configuration used when no file is provided
func Default() *Config {
	return &Config{
		Port:          "8080",
		MySQLDSN:      "uicheck:uicheck@tcp(localhost:3306)/uicheck?parseTime=true",
		TemporalHost:  "localhost:7233",
		TargetURL:     "http://localhost:8000",
		ScreenshotDir: "/tmp/screenshots",
		Headless:      true,
	}
}

// Load reads the YAML file at path (if non-empty) on top of defaults, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvOrDefault("PORT", c.Port)
	c.MySQLDSN = getEnvOrDefault("MYSQL_DSN", c.MySQLDSN)
	c.TemporalHost = getEnvOrDefault("TEMPORAL_HOST", c.TemporalHost)
	c.TargetURL = getEnvOrDefault("TARGET_URL", c.TargetURL)
	c.ScreenshotDir = getEnvOrDefault("SCREENSHOT_DIR", c.ScreenshotDir)
	c.ChromeBin = getEnvOrDefault("CHROME_BIN", c.ChromeBin)
}

func (c *Config) validate() error {
	for _, suite := range c.Suites {
		if suite.Name == "" {
			return fmt.Errorf("suite with %d checks has no name", len(suite.Checks))
		}
		for _, check := range suite.Checks {
			switch check.Type {
			case models.CheckNavigate, models.CheckReloadPersist:
			case models.CheckToggleClass:
				if check.Selector == "" || check.Class == "" {
					return fmt.Errorf("suite %q: toggle_class check %d needs selector and class", suite.Name, check.SequenceID)
				}
			case models.CheckViewportWidth:
				if check.Selector == "" || check.Viewport == nil {
					return fmt.Errorf("suite %q: viewport_width check %d needs selector and viewport", suite.Name, check.SequenceID)
				}
			default:
				return fmt.Errorf("suite %q: unknown check type %q", suite.Name, check.Type)
			}
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
