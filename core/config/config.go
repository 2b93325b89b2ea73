package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"content-catalog/core/database"
	"content-catalog/core/logger"
	"content-catalog/core/server"
	"content-catalog/core/storage"
	"content-catalog/feature/catalog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per
// component.
type Config struct {
	Server server.Config `mapstructure:"server"`
	// Storage is only used when the catalog source is "bucket".
	Storage storage.Config `mapstructure:"storage"`
	Log     logger.Config  `mapstructure:"log"`
	// Database persists the origin blacklist. It is optional.
	Database database.Config `mapstructure:"database"`
	Catalog  catalog.Config  `mapstructure:"catalog"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := filepath.Join(path, ".env")
	// A missing .env is fine; the environment alone may configure us.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// CATALOG_DATA_DIR -> catalog.data_dir
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if !config.Catalog.IsValidSource() {
		return nil, fmt.Errorf("unknown catalog source %q", config.Catalog.Source)
	}

	return &config, nil
}

// bindValues registers every mapstructure key of iface with its default tag,
// so AutomaticEnv can see keys nobody set.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

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

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
