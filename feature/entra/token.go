package entra

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// LoginBaseURL is the Microsoft identity platform authority.
	LoginBaseURL = "https://login.microsoftonline.com"
	// GraphScope requests the application permissions granted to the client.
	GraphScope = "https://graph.microsoft.com/.default"

	clientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

// TokenURL returns the v2.0 token endpoint of tenantID under authority.
func TokenURL(authority, tenantID string) string {
	return authority + "/" + url.PathEscape(tenantID) + "/oauth2/v2.0/token"
}

// assertionSource exchanges a fresh client assertion for a token on every call.
type assertionSource struct {
	ctx      context.Context
	cert     *Certificate
	clientID string
	tokenURL string
	now      func() time.Time
}

func (s *assertionSource) Token() (*oauth2.Token, error) {
	assertion, err := s.cert.Assertion(s.clientID, s.tokenURL, s.now())
	if err != nil {
		return nil, err
	}

	cfg := clientcredentials.Config{
		ClientID:  s.clientID,
		TokenURL:  s.tokenURL,
		Scopes:    []string{GraphScope},
		AuthStyle: oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"client_assertion_type": {clientAssertionType},
			"client_assertion":      {assertion},
		},
	}
	return cfg.Token(s.ctx)
}

// NewTokenSource returns a cached token source for the certificate
// client-credentials flow against tokenURL. httpClient carries the token
// requests; nil means http.DefaultClient.
func NewTokenSource(ctx context.Context, httpClient *http.Client, tokenURL, clientID, certificate string) (oauth2.TokenSource, error) {
	cert, err := ParseCertificate(certificate)
	if err != nil {
		return nil, err
	}

	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	return oauth2.ReuseTokenSource(nil, &assertionSource{
		ctx:      ctx,
		cert:     cert,
		clientID: clientID,
		tokenURL: tokenURL,
		now:      time.Now,
	}), nil
}

// NewClient returns an HTTP client that authorizes every request with a
// token from ts and sends it through base.
func NewClient(ctx context.Context, base *http.Client, ts oauth2.TokenSource) *http.Client {
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return oauth2.NewClient(ctx, ts)
}
