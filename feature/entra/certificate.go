package entra

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrCertificate is returned when the client certificate cannot be used.
var ErrCertificate = errors.New("invalid client certificate")

// assertionLifetime is how long a signed client assertion stays valid.
const assertionLifetime = 10 * time.Minute

// Certificate is a parsed client certificate with its private key.
type Certificate struct {
	Cert *x509.Certificate
	Key  *rsa.PrivateKey
}

// ParseCertificate decodes a base64-encoded PEM bundle holding a CERTIFICATE
// block and an RSA private key (PKCS#8 or PKCS#1).
func ParseCertificate(encoded string) (*Certificate, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: not base64: %v", ErrCertificate, err)
	}

	var c Certificate
	for block, rest := pem.Decode(raw); block != nil; block, rest = pem.Decode(rest) {
		switch block.Type {
		case "CERTIFICATE":
			if c.Cert != nil {
				continue
			}
			if c.Cert, err = x509.ParseCertificate(block.Bytes); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCertificate, err)
			}
		case "PRIVATE KEY":
			key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCertificate, err)
			}
			rsaKey, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, fmt.Errorf("%w: private key is not RSA", ErrCertificate)
			}
			c.Key = rsaKey
		case "RSA PRIVATE KEY":
			if c.Key, err = x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCertificate, err)
			}
		}
	}

	if c.Cert == nil {
		return nil, fmt.Errorf("%w: no CERTIFICATE block", ErrCertificate)
	}
	if c.Key == nil {
		return nil, fmt.Errorf("%w: no private key block", ErrCertificate)
	}
	return &c, nil
}

// Thumbprint returns the base64url SHA-1 thumbprint of the certificate, as
// carried in the x5t header of a client assertion.
func (c *Certificate) Thumbprint() string {
	sum := sha1.Sum(c.Cert.Raw)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Assertion signs a client assertion for clientID addressed to tokenURL.
func (c *Certificate) Assertion(clientID, tokenURL string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    clientID,
		Subject:   clientID,
		Audience:  jwt.ClaimStrings{tokenURL},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["x5t"] = c.Thumbprint()

	signed, err := token.SignedString(c.Key)
	if err != nil {
		return "", fmt.Errorf("failed to sign client assertion: %w", err)
	}
	return signed, nil
}
