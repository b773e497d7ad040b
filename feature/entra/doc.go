// Package entra reads the user directory from Microsoft Entra ID.
//
// Source implements reconcile.Source over the Microsoft Graph /users
// endpoint. Only enabled accounts are requested, and pages are followed
// through @odata.nextLink until the directory is exhausted. A failed page
// fails the whole read.
//
// # Normalization
//
//   - Users with neither mail nor userPrincipalName are dropped.
//   - DisplayName falls back to mail, then userPrincipalName.
//   - A missing given or family name is taken from the parsed display name.
//
// # Authentication
//
// NewTokenSource implements the certificate client-credentials flow. The
// configured certificate is a base64-encoded PEM bundle holding the client
// certificate and its RSA private key. Every token request carries a freshly
// signed client assertion; tokens are cached until they expire.
//
// # Usage
//
//	tokenURL := entra.TokenURL(entra.LoginBaseURL, tenantID)
//	ts, err := entra.NewTokenSource(ctx, httpClient, tokenURL, clientID, certificate)
//	src := entra.NewSource(entra.NewClient(ctx, httpClient, ts), entra.GraphBaseURL, logger)
//	users, err := src.FetchAll(ctx)
package entra
