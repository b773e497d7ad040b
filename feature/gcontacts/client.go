package gcontacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope grants read and write access to the contacts feeds.
const Scope = "https://www.google.com/m8/feeds"

// ErrCredentials is returned when the service account key cannot be used.
var ErrCredentials = errors.New("invalid service account credentials")

// NewHTTPClient returns a client authorized as serviceAccountJSON acting on
// behalf of delegatedUser. base carries both token and API requests; nil
// means http.DefaultClient.
func NewHTTPClient(ctx context.Context, base *http.Client, serviceAccountJSON, delegatedUser string) (*http.Client, error) {
	cfg, err := google.JWTConfigFromJSON([]byte(serviceAccountJSON), Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	cfg.Subject = delegatedUser

	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return cfg.Client(ctx), nil
}
