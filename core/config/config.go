package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"livery-audit/core/database"
	"livery-audit/core/logger"
	"livery-audit/core/server"
	"livery-audit/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Install holds the installation roots to scan.
	Install Install `mapstructure:"install"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the audit history database.
	Database database.Config `mapstructure:"database"`
}

// Install holds configuration for the installed livery scan.
type Install struct {
	// Roots are local directories or s3://bucket/prefix URLs, comma separated
	// in the environment.
	Roots []string `mapstructure:"roots" default:""`
	// CacheTTLSeconds is how long the server reuses a scan. Zero disables reuse.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (i Install) CacheTTL() time.Duration {
	if i.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(i.CacheTTLSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and the .env
// file in dir. Variables from the file override the environment.
func LoadConfig(dir string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Install.Roots = clean(config.Install.Roots)
	return &config, nil
}

// clean trims entries and drops empty ones.
func clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
