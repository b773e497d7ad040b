// Package config provides configuration management for dirsync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, and resolves the secret document that carries the
// credentials of a sync run.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP trigger server settings (port, API key)
//   - Storage: S3/MinIO settings of the bucket holding the secret document
//   - Log: Logging level and format
//   - HTTP: Outbound timeout and request pacing
//   - Sync: Environment label, secret source, concurrency and dry-run
//
// # Secrets
//
// The secret document is JSON and is read through a SecretProvider, either
// straight from SYNC_SECRET_JSON or from an object in the storage bucket.
// ParseSettings validates it into Settings; deleteRemovedContacts defaults
// to true when absent.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	provider, _ := config.NewSecretProvider(cfg)
//	settings, err := config.LoadSettings(ctx, provider, cfg.Sync.Environment)
package config
