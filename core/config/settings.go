package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
)

var (
	// ErrMissingSecret is returned when the secret document is empty or absent.
	ErrMissingSecret = errors.New("secret document not found")
	// ErrInvalidSettings is returned when the secret document fails validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// Environments accepted for Settings.Environment.
const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// Settings is the validated secret document of a sync run.
type Settings struct {
	// EntraTenantID is the directory (tenant) ID of the source directory.
	EntraTenantID string `json:"entraTenantId"`
	// EntraClientID is the application (client) ID registered in the tenant.
	EntraClientID string `json:"entraClientId"`
	// EntraClientCertificate is the base64-encoded PEM holding the client
	// certificate and its private key.
	EntraClientCertificate string `json:"entraClientCertificate"`
	// GoogleDelegatedUser is the Workspace user impersonated by the service
	// account. Its domain selects the shared contacts feed.
	GoogleDelegatedUser string `json:"googleDelegatedUser"`
	// GoogleServiceAccountJSON is the service account key file content.
	GoogleServiceAccountJSON string `json:"googleServiceAccountJson"`
	// DeleteRemovedContacts enables deletion of contacts missing from the source.
	DeleteRemovedContacts bool `json:"deleteRemovedContacts"`
	// Environment labels the run (dev, prod). Not part of the secret document.
	Environment string `json:"-"`
}

// ParseSettings decodes a secret document and validates it. Missing
// deleteRemovedContacts defaults to true.
func ParseSettings(data []byte, environment string) (*Settings, error) {
	if len(data) == 0 {
		return nil, ErrMissingSecret
	}

	var raw struct {
		Settings
		DeleteRemovedContacts *bool `json:"deleteRemovedContacts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: secret document is not valid JSON: %v", ErrInvalidSettings, err)
	}

	s := raw.Settings
	s.DeleteRemovedContacts = true
	if raw.DeleteRemovedContacts != nil {
		s.DeleteRemovedContacts = *raw.DeleteRemovedContacts
	}
	s.Environment = environment

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every required field is present and well formed.
// All problems are reported at once.
func (s *Settings) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"entraTenantId", s.EntraTenantID},
		{"entraClientId", s.EntraClientID},
		{"entraClientCertificate", s.EntraClientCertificate},
		{"googleServiceAccountJson", s.GoogleServiceAccountJSON},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}

	if addr, err := mail.ParseAddress(s.GoogleDelegatedUser); err != nil || addr.Address != s.GoogleDelegatedUser {
		errs = append(errs, errors.New("googleDelegatedUser must be a valid email"))
	}

	switch s.Environment {
	case EnvironmentDev, EnvironmentProd:
	default:
		errs = append(errs, fmt.Errorf("environment must be %q or %q, got %q", EnvironmentDev, EnvironmentProd, s.Environment))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}
