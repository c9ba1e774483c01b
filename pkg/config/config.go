package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Invitation InvitationConfig `mapstructure:"invitation"`
	Locale     LocaleConfig     `mapstructure:"locale"`
	Invoice    InvoiceConfig    `mapstructure:"invoice"`
}

type InvoiceConfig struct {
	// FontPath points to a TTF with Japanese glyphs for the PDF invoice.
	// Empty means the built-in Latin font with English-only labels.
	FontPath string `mapstructure:"font_path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

type UploadConfig struct {
	// BaseDir holds one subdirectory per bucket ("posts", "avatars").
	BaseDir     string `mapstructure:"base_dir"`
	PublicPath  string `mapstructure:"public_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

type InvitationConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type LocaleConfig struct {
	Dir      string `mapstructure:"dir"`
	Language string `mapstructure:"language"`
}

var GlobalConfig Config

func Init() error {
	return load("config")
}

// InitTest loads the test configuration (separate database, temp dirs).
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	// resolve the project root from this file's location
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if GlobalConfig.Invitation.TTL <= 0 {
		GlobalConfig.Invitation.TTL = 7 * 24 * time.Hour
	}

	// locale files live in the repo; resolve relative paths against the
	// project root so tests and the server see the same catalog.
	if GlobalConfig.Locale.Dir == "" {
		GlobalConfig.Locale.Dir = "locales"
	}
	if !filepath.IsAbs(GlobalConfig.Locale.Dir) {
		GlobalConfig.Locale.Dir = filepath.Join(basepath, GlobalConfig.Locale.Dir)
	}
	if GlobalConfig.Locale.Language == "" {
		GlobalConfig.Locale.Language = "ja"
	}

	return nil
}
