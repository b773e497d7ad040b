package entra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dirsync/core/identity"
	"dirsync/core/pager"
	"dirsync/core/reconcile"

	"go.uber.org/zap"
)

// ErrFetch is returned when the directory cannot be read completely.
var ErrFetch = errors.New("failed to fetch directory users")

// GraphBaseURL is the Microsoft Graph v1.0 endpoint.
const GraphBaseURL = "https://graph.microsoft.com/v1.0"

// usersQuery selects the synced attributes of enabled accounts, 999 per page.
const usersQuery = "/users?$select=userPrincipalName,mail,givenName,surname,displayName" +
	"&$filter=accountEnabled%20eq%20true&$top=999"

// graphUser is a user object as returned by Graph.
type graphUser struct {
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
	GivenName         string `json:"givenName"`
	Surname           string `json:"surname"`
	DisplayName       string `json:"displayName"`
}

type usersPage struct {
	Value    []graphUser `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// Source reads enabled users from Microsoft Graph.
type Source struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

var _ reconcile.Source = (*Source)(nil)

// NewSource creates a directory source. client must authorize requests
// (see NewClient); baseURL is usually GraphBaseURL.
func NewSource(client *http.Client, baseURL string, logger *zap.Logger) *Source {
	return &Source{client: client, baseURL: baseURL, logger: logger}
}

// Name returns the name of the source.
func (s *Source) Name() string {
	return "entra"
}

// FetchAll returns every enabled user holding at least one email address.
func (s *Source) FetchAll(ctx context.Context) ([]reconcile.Identity, error) {
	s.logger.Info("Fetching users from Entra ID")

	users, err := pager.All(ctx, s.baseURL+usersQuery, s.fetchPage)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetched users from Entra ID", zap.Int("count", len(users)))
	return users, nil
}

func (s *Source) fetchPage(ctx context.Context, pageURL string) (pager.Page[reconcile.Identity], error) {
	var page pager.Page[reconcile.Identity]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return page, fmt.Errorf("%w: status %d: %s", ErrFetch, resp.StatusCode, body)
	}

	var payload usersPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return page, fmt.Errorf("%w: invalid response: %v", ErrFetch, err)
	}

	for _, u := range payload.Value {
		if id, ok := toIdentity(u); ok {
			page.Items = append(page.Items, id)
		}
	}
	page.Next = payload.NextLink
	return page, nil
}

// toIdentity normalizes a Graph user. It reports false for users without
// any email address.
func toIdentity(u graphUser) (reconcile.Identity, bool) {
	if u.Mail == "" && u.UserPrincipalName == "" {
		return reconcile.Identity{}, false
	}

	display := u.DisplayName
	if display == "" {
		display = u.Mail
	}
	if display == "" {
		display = u.UserPrincipalName
	}

	given, family := u.GivenName, u.Surname
	if given == "" || family == "" {
		parsedGiven, parsedFamily := identity.ParseDisplayName(display)
		if given == "" {
			given = parsedGiven
		}
		if family == "" {
			family = parsedFamily
		}
	}

	return reconcile.Identity{
		PrimaryEmail:   u.Mail,
		SecondaryEmail: u.UserPrincipalName,
		GivenName:      given,
		FamilyName:     family,
		DisplayName:    display,
	}, true
}
