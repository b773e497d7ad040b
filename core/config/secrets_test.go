package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"dirsync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStaticSecret(t *testing.T) {
	data, err := StaticSecret(validSecret).Secret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, validSecret, string(data))

	_, err = StaticSecret(nil).Secret(context.Background())
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestObjectSecret(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "secrets").Return(true, nil)
		client.On("GetObject", mock.Anything, "secrets", "dirsync.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(validSecret))), nil)

		p := &ObjectSecret{Client: client, Bucket: "secrets", Object: "dirsync.json"}
		s, err := LoadSettings(context.Background(), p, EnvironmentProd)
		require.NoError(t, err)
		assert.Equal(t, "tenant-123", s.EntraTenantID)
		client.AssertExpectations(t)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "secrets").Return(false, nil)

		p := &ObjectSecret{Client: client, Bucket: "secrets", Object: "dirsync.json"}
		_, err := p.Secret(context.Background())
		assert.ErrorIs(t, err, ErrMissingSecret)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GetObjectError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "secrets").Return(true, nil)
		client.On("GetObject", mock.Anything, "secrets", "dirsync.json", mock.Anything).
			Return(nil, errors.New("access denied"))

		p := &ObjectSecret{Client: client, Bucket: "secrets", Object: "dirsync.json"}
		_, err := p.Secret(context.Background())
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("EmptyObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "secrets").Return(true, nil)
		client.On("GetObject", mock.Anything, "secrets", "dirsync.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(nil)), nil)

		p := &ObjectSecret{Client: client, Bucket: "secrets", Object: "dirsync.json"}
		_, err := p.Secret(context.Background())
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestNewSecretProvider(t *testing.T) {
	t.Run("Env", func(t *testing.T) {
		p, err := NewSecretProvider(&Config{Sync: SyncConfig{SecretSource: SecretSourceEnv, SecretJSON: "{}"}})
		require.NoError(t, err)
		assert.IsType(t, StaticSecret(nil), p)
	})

	t.Run("Object", func(t *testing.T) {
		cfg := &Config{Sync: SyncConfig{SecretSource: SecretSourceObject, SecretObject: "x.json"}}
		cfg.Storage.Endpoint = "localhost:9000"
		cfg.Storage.AccessKey = "key"
		cfg.Storage.SecretKey = "secret"
		cfg.Storage.Bucket = "secrets"

		p, err := NewSecretProvider(cfg)
		require.NoError(t, err)
		obj, ok := p.(*ObjectSecret)
		require.True(t, ok)
		assert.Equal(t, "secrets", obj.Bucket)
		assert.Equal(t, "x.json", obj.Object)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewSecretProvider(&Config{Sync: SyncConfig{SecretSource: "vault"}})
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}
