package config

import (
	"context"
	"fmt"
	"io"

	"dirsync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Secret sources accepted for SyncConfig.SecretSource.
const (
	SecretSourceEnv    = "env"
	SecretSourceObject = "object"
)

// SecretProvider returns the raw secret document of a sync run.
type SecretProvider interface {
	Secret(ctx context.Context) ([]byte, error)
}

// StaticSecret is a secret document held in configuration.
type StaticSecret []byte

// Secret returns the document.
func (s StaticSecret) Secret(ctx context.Context) ([]byte, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: sync.secret_json is empty", ErrMissingSecret)
	}
	return s, nil
}

// ObjectSecret reads the secret document from an object in a bucket.
type ObjectSecret struct {
	Client storage.Client
	Bucket string
	Object string
}

// Secret downloads the document.
func (o *ObjectSecret) Secret(ctx context.Context) ([]byte, error) {
	exists, err := o.Client.BucketExists(ctx, o.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", o.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %s does not exist", ErrMissingSecret, o.Bucket)
	}

	reader, err := o.Client.GetObject(ctx, o.Bucket, o.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret object %s: %w", o.Object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret object %s: %w", o.Object, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: object %s is empty", ErrMissingSecret, o.Object)
	}
	return data, nil
}

// NewSecretProvider builds the provider selected by cfg.Sync.SecretSource.
func NewSecretProvider(cfg *Config) (SecretProvider, error) {
	switch cfg.Sync.SecretSource {
	case "", SecretSourceEnv:
		return StaticSecret(cfg.Sync.SecretJSON), nil
	case SecretSourceObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &ObjectSecret{Client: client, Bucket: cfg.Storage.Bucket, Object: cfg.Sync.SecretObject}, nil
	default:
		return nil, fmt.Errorf("%w: unknown secret source %q", ErrInvalidSettings, cfg.Sync.SecretSource)
	}
}

// LoadSettings fetches the secret document from p and validates it.
func LoadSettings(ctx context.Context, p SecretProvider, environment string) (*Settings, error) {
	data, err := p.Secret(ctx)
	if err != nil {
		return nil, err
	}
	return ParseSettings(data, environment)
}
