package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"resource-manager/core/archive"
	"resource-manager/core/database"
	"resource-manager/core/logger"
	"resource-manager/core/resource"
	"resource-manager/core/server"
	"resource-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the admin HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage raw assets are read from.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the asset catalog database.
	Database database.Config `mapstructure:"database"`
	// Resources holds configuration for the resource manager.
	Resources resource.Config `mapstructure:"resources"`
	// Archive holds configuration for the expansion pack.
	Archive archive.Config `mapstructure:"archive"`
}

// LoadConfig loads configuration from environment variables and a .env file in path.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is fine (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Register every key with its default so AutomaticEnv can see it
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RESOURCES_CLEANUP_POLICY -> resources.cleanup_policy)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports every invalid setting at once. The admin server port is
// only checked by the start command, which is the one that listens.
func (c *Config) Validate() error {
	var errs error
	if !c.Resources.IsValidCleanupPolicy() {
		errs = multierr.Append(errs, fmt.Errorf("invalid cleanup policy %q", c.Resources.CleanupPolicy))
	}
	if c.Resources.DefaultMipmapLevel < 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid default mipmap level %d", c.Resources.DefaultMipmapLevel))
	}
	switch c.Database.Driver {
	case "mysql", "sqlite", "":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Archive.EntryCacheSize < 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid archive entry cache size %d", c.Archive.EntryCacheSize))
	}
	return errs
}

// bindValues walks the struct and sets Viper defaults from the
// 'default' and 'mapstructure' tags.
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

		// Always set the default, even if empty, to register the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
