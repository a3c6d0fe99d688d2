package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath      string `long:"db-path" env:"DB_PATH" default:"./data/daycast.db" description:"Path to the sqlite database file"`
	UploadsDir  string `long:"uploads-dir" env:"UPLOADS_DIR" default:"./data/uploads" description:"Directory for uploaded images"`
	ProductFile string `long:"product-file" env:"PRODUCT_FILE" default:"./config/product.yml" description:"Path to the product catalog file (channels, styles, AI parameters)"`

	// Application configuration
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl  string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g. https://daycast.example.com)"`
	AuthMode string `long:"auth-mode" env:"AUTH_MODE" default:"none" choice:"none" choice:"jwt" description:"Authentication mode"`

	// AI provider configuration
	OpenAIAPIKey  string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (required for generation)"`
	OpenAIBaseUrl string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"Override the OpenAI API base URL (optional)"`

	// Security
	JWTSecret string `long:"jwt-secret" env:"JWT_SECRET" default:"change-me-in-production" description:"Secret for signing auth tokens"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g. UTC, Europe/Riga)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		UploadsDir:    raw.UploadsDir,
		ProductFile:   raw.ProductFile,
		Port:          raw.Port,
		BaseUrl:       raw.BaseUrl,
		AuthMode:      raw.AuthMode,
		OpenAIAPIKey:  raw.OpenAIAPIKey,
		OpenAIBaseUrl: raw.OpenAIBaseUrl,
		JWTSecret:     raw.JWTSecret,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
