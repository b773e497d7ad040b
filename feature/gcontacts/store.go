package gcontacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dirsync/core/pager"
	"dirsync/core/reconcile"

	"go.uber.org/zap"
)

const (
	// FeedBaseURL is the root of the GData contacts feeds.
	FeedBaseURL = "https://www.google.com/m8/feeds/contacts"
	// PageSize is the number of entries requested per feed page.
	PageSize = 1000

	gdataVersion = "3.0"
	atomType     = "application/atom+xml"
)

// ErrFetch is returned when the contacts feed cannot be read completely.
var ErrFetch = errors.New("failed to fetch domain contacts")

// Store reads and writes the shared contacts of one domain.
type Store struct {
	client *http.Client
	feed   string
	logger *zap.Logger
}

var _ reconcile.Store = (*Store)(nil)

// NewStore creates a store for domain. client must authorize requests (see
// NewHTTPClient); baseURL is usually FeedBaseURL.
func NewStore(client *http.Client, baseURL, domain string, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		feed:   baseURL + "/" + url.PathEscape(domain) + "/full",
		logger: logger.With(zap.String("domain", domain)),
	}
}

// Name returns the name of the store.
func (s *Store) Name() string {
	return "gcontacts"
}

// FetchAll returns every contact of the domain holding at least one email.
func (s *Store) FetchAll(ctx context.Context) ([]reconcile.Contact, error) {
	s.logger.Info("Fetching domain shared contacts")

	entries, err := pager.All(ctx, "1", pager.ByOffset(PageSize, s.fetchPage))
	if err != nil {
		return nil, err
	}

	contacts := make([]reconcile.Contact, 0, len(entries))
	for _, e := range entries {
		if c, ok := e.toContact(); ok {
			contacts = append(contacts, c)
		}
	}

	s.logger.Info("Fetched domain shared contacts",
		zap.Int("entries", len(entries)),
		zap.Int("contacts", len(contacts)),
	)
	return contacts, nil
}

// fetchPage reads one feed page. start is the 1-based start-index.
func (s *Store) fetchPage(ctx context.Context, start, limit int) ([]entry, error) {
	q := url.Values{}
	q.Set("max-results", strconv.Itoa(limit))
	q.Set("start-index", strconv.Itoa(start))
	q.Set("alt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feed+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("GData-Version", gdataVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		body := readBody(resp)
		s.logger.Error("Failed to fetch domain contacts",
			zap.Int("status", resp.StatusCode),
			zap.Int("start_index", start),
			zap.String("error", body),
		)
		return nil, fmt.Errorf("%w: status %d: %s", ErrFetch, resp.StatusCode, body)
	}

	var page feed
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrFetch, err)
	}

	s.logger.Debug("Fetched contacts page",
		zap.Int("start_index", start),
		zap.Int("entries", len(page.Feed.Entry)),
	)
	return page.Feed.Entry, nil
}

// Create adds a contact built from fields.
func (s *Store) Create(ctx context.Context, fields reconcile.Identity) bool {
	return s.write(ctx, "create", http.MethodPost, s.feed, "", fields.Key(), strings.NewReader(EncodeEntry(fields)))
}

// Update replaces contact id with fields. etag must be the value read with
// the contact.
func (s *Store) Update(ctx context.Context, id, etag string, fields reconcile.Identity) bool {
	return s.write(ctx, "update", http.MethodPut, s.entryURL(id), etag, fields.Key(), strings.NewReader(EncodeEntry(fields)))
}

// Delete removes contact id. key is used for logging only.
func (s *Store) Delete(ctx context.Context, id, etag, key string) bool {
	return s.write(ctx, "delete", http.MethodDelete, s.entryURL(id), etag, key, nil)
}

func (s *Store) entryURL(id string) string {
	return s.feed + "/" + url.PathEscape(id)
}

func (s *Store) write(ctx context.Context, action, method, target, etag, key string, body io.Reader) bool {
	l := s.logger.With(zap.String("action", action), zap.String("email", key))

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		l.Error("Failed to build contact request", zap.Error(err))
		return false
	}
	req.Header.Set("GData-Version", gdataVersion)
	if body != nil {
		req.Header.Set("Content-Type", atomType)
	}
	if etag != "" {
		req.Header.Set("If-Match", etag)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		l.Error("Contact request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		msg := "Contact request rejected"
		if resp.StatusCode == http.StatusPreconditionFailed {
			msg = "Contact changed since it was read"
		}
		l.Error(msg, zap.Int("status", resp.StatusCode), zap.String("error", readBody(resp)))
		return false
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	l.Info("Domain shared contact written")
	return true
}

func ok(status int) bool {
	return status >= 200 && status <= 299
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return string(b)
}
