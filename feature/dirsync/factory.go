package dirsync

import (
	"context"
	"net/http"

	"dirsync/core/config"
	"dirsync/core/reconcile"
	"dirsync/feature/entra"
	"dirsync/feature/gcontacts"

	"go.uber.org/zap"
)

// SourceFactory builds the directory source of a run.
type SourceFactory func(ctx context.Context, s *config.Settings) (reconcile.Source, error)

// StoreFactory builds the contact store of a run for domain.
type StoreFactory func(ctx context.Context, s *config.Settings, domain string) (reconcile.Store, error)

// Endpoints holds the upstream base URLs.
type Endpoints struct {
	Login    string
	Graph    string
	Contacts string
}

// DefaultEndpoints returns the public Microsoft and Google endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:    entra.LoginBaseURL,
		Graph:    entra.GraphBaseURL,
		Contacts: gcontacts.FeedBaseURL,
	}
}

// EntraSources returns a factory building Graph sources authenticated with
// the certificate of the settings. base carries every outbound request.
func EntraSources(base *http.Client, ep Endpoints, logger *zap.Logger) SourceFactory {
	return func(ctx context.Context, s *config.Settings) (reconcile.Source, error) {
		ts, err := entra.NewTokenSource(ctx, base, entra.TokenURL(ep.Login, s.EntraTenantID), s.EntraClientID, s.EntraClientCertificate)
		if err != nil {
			return nil, err
		}
		return entra.NewSource(entra.NewClient(ctx, base, ts), ep.Graph, logger), nil
	}
}

// GoogleStores returns a factory building shared contacts stores that act
// as the delegated user of the settings.
func GoogleStores(base *http.Client, ep Endpoints, logger *zap.Logger) StoreFactory {
	return func(ctx context.Context, s *config.Settings, domain string) (reconcile.Store, error) {
		client, err := gcontacts.NewHTTPClient(ctx, base, s.GoogleServiceAccountJSON, s.GoogleDelegatedUser)
		if err != nil {
			return nil, err
		}
		return gcontacts.NewStore(client, ep.Contacts, domain, logger), nil
	}
}
