package config

import (
	"reflect"
	"strings"

	"dirsync/core/httpclient"
	"dirsync/core/logger"
	"dirsync/core/server"
	"dirsync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP trigger server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding the secret document.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// HTTP holds configuration for outbound API calls.
	HTTP httpclient.Config `mapstructure:"http"`
	// Sync holds configuration for the sync run itself.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds the non-secret settings of a sync run.
type SyncConfig struct {
	// Environment labels the run (dev, prod). Also read from RunEnvironment.
	Environment string `mapstructure:"environment" default:""`
	// SecretSource selects where the secret document is read from (env, object).
	SecretSource string `mapstructure:"secret_source" default:"env"`
	// SecretJSON is the secret document itself when SecretSource is "env".
	SecretJSON string `mapstructure:"secret_json" default:""`
	// SecretObject is the object name of the secret document when SecretSource is "object".
	SecretObject string `mapstructure:"secret_object" default:"gsuite-dirsync-config.json"`
	// Concurrency bounds in-flight destination writes within a phase.
	Concurrency int `mapstructure:"concurrency" default:"1"`
	// DryRun computes the plan without writing to the destination.
	DryRun bool `mapstructure:"dry_run" default:"false"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_DRY_RUN -> sync.dry_run)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The scheduler sets RunEnvironment; SYNC_ENVIRONMENT takes precedence.
	if err := v.BindEnv("sync.environment", "SYNC_ENVIRONMENT", "RunEnvironment"); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
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

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
