package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the settings of the clinic tool.
type Config struct {
	DatabasePath      string `mapstructure:"database_path" yaml:"database_path" validate:"required"`
	AssetDir          string `mapstructure:"asset_dir" yaml:"asset_dir" validate:"required"`
	RegularFont       string `mapstructure:"regular_font" yaml:"regular_font" validate:"required"`
	BoldFont          string `mapstructure:"bold_font" yaml:"bold_font" validate:"required"`
	SignatureFile     string `mapstructure:"signature_file" yaml:"signature_file"`
	ReportDir         string `mapstructure:"report_dir" yaml:"report_dir" validate:"required"`
	ClinicName        string `mapstructure:"clinic_name" yaml:"clinic_name" validate:"required"`
	ThumbnailSize     int    `mapstructure:"thumbnail_size" yaml:"thumbnail_size" validate:"gt=0"`
	AdminUsername     string `mapstructure:"admin_username" yaml:"admin_username" validate:"required"`
	BootstrapPassword string `mapstructure:"bootstrap_password" yaml:"-"` // Only read on first run
	LogLevel          string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat         string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=console json"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database_path", "patients.db")
	v.SetDefault("asset_dir", "static")
	v.SetDefault("regular_font", "Amiri-Regular.ttf")
	v.SetDefault("bold_font", "Amiri-Bold.ttf")
	v.SetDefault("signature_file", "doctor_signature.png")
	v.SetDefault("report_dir", ".")
	v.SetDefault("clinic_name", "عيادة بارود")
	v.SetDefault("thumbnail_size", 125)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("bootstrap_password", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Load reads the configuration from defaults, an optional YAML file and
// CLINIC_* environment variables, in increasing priority.
// The file is named by CLINIC_CONFIG, or clinic.yaml in the working
// directory; a missing default file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("CLINIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("clinic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RegularFontPath returns the path of the regular weight font.
func (c *Config) RegularFontPath() string {
	return filepath.Join(c.AssetDir, c.RegularFont)
}

// BoldFontPath returns the path of the bold weight font.
func (c *Config) BoldFontPath() string {
	return filepath.Join(c.AssetDir, c.BoldFont)
}

// SignaturePath returns the path of the doctor signature image, or "" when
// none is configured.
func (c *Config) SignaturePath() string {
	if c.SignatureFile == "" {
		return ""
	}
	return filepath.Join(c.AssetDir, c.SignatureFile)
}
