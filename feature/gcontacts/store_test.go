package gcontacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"dirsync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const domain = "acm.illinois.edu"

// feedEntry renders one JSON feed entry for contact n.
func feedEntry(n int) map[string]any {
	return map[string]any{
		"id":      map[string]string{"$t": fmt.Sprintf("http://www.google.com/m8/feeds/contacts/%s/base/c%d", domain, n)},
		"gd$etag": fmt.Sprintf("etag%d", n),
		"gd$email": []map[string]string{
			{"address": fmt.Sprintf("user%d@%s", n, domain), "primary": "true"},
		},
	}
}

func writeFeed(w http.ResponseWriter, entries []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"feed": map[string]any{"entry": entries}})
}

func TestStore_FetchAll(t *testing.T) {
	var (
		mu     sync.Mutex
		starts []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+domain+"/full", r.URL.Path)
		assert.Equal(t, "3.0", r.Header.Get("GData-Version"))
		assert.Equal(t, "json", r.URL.Query().Get("alt"))
		assert.Equal(t, "1000", r.URL.Query().Get("max-results"))

		start, _ := strconv.Atoi(r.URL.Query().Get("start-index"))
		mu.Lock()
		starts = append(starts, r.URL.Query().Get("start-index"))
		mu.Unlock()

		var entries []map[string]any
		switch start {
		case 1:
			for i := 0; i < PageSize; i++ {
				entries = append(entries, feedEntry(i))
			}
			// An entry without email still counts towards the page size.
			entries[PageSize-1] = map[string]any{"id": map[string]string{"$t": "x/base/noemail"}}
		case 1 + PageSize:
			entries = append(entries, feedEntry(5000))
		}
		writeFeed(w, entries)
	}))
	defer srv.Close()

	store := NewStore(srv.Client(), srv.URL, domain, zap.NewNop())
	assert.Equal(t, "gcontacts", store.Name())

	contacts, err := store.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "1001"}, starts)
	assert.Len(t, contacts, PageSize)
	assert.Equal(t, "c0", contacts[0].ID)
	assert.Equal(t, "etag0", contacts[0].ETag)
	assert.Equal(t, "user5000@"+domain, contacts[len(contacts)-1].Fields.PrimaryEmail)
}

func TestStore_FetchAllEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feed":{}}`)
	}))
	defer srv.Close()

	contacts, err := NewStore(srv.Client(), srv.URL, domain, zap.NewNop()).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestStore_FetchAllError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "Not authorized to access this feed")
	}))
	defer srv.Close()

	contacts, err := NewStore(srv.Client(), srv.URL, domain, zap.NewNop()).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorContains(t, err, "status 403")
	assert.Nil(t, contacts)
}

type recorded struct {
	method  string
	path    string
	ifMatch string
	ctype   string
	body    string
}

func recordingServer(t *testing.T, status int) (*httptest.Server, <-chan recorded) {
	t.Helper()
	ch := make(chan recorded, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "3.0", r.Header.Get("GData-Version"))
		ch <- recorded{
			method:  r.Method,
			path:    r.URL.Path,
			ifMatch: r.Header.Get("If-Match"),
			ctype:   r.Header.Get("Content-Type"),
			body:    string(body),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func TestStore_Create(t *testing.T) {
	fields := reconcile.Identity{PrimaryEmail: "new@illinois.edu", GivenName: "New", DisplayName: "New"}

	srv, ch := recordingServer(t, http.StatusCreated)
	store := NewStore(srv.Client(), srv.URL, domain, zap.NewNop())

	assert.True(t, store.Create(context.Background(), fields))
	rec := <-ch
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/"+domain+"/full", rec.path)
	assert.Equal(t, "application/atom+xml", rec.ctype)
	assert.Empty(t, rec.ifMatch)
	assert.Equal(t, EncodeEntry(fields), rec.body)
}

func TestStore_Update(t *testing.T) {
	fields := reconcile.Identity{PrimaryEmail: "a@illinois.edu", FamilyName: "Changed"}

	t.Run("Success", func(t *testing.T) {
		srv, ch := recordingServer(t, http.StatusOK)
		store := NewStore(srv.Client(), srv.URL, domain, zap.NewNop())

		assert.True(t, store.Update(context.Background(), "c1", `"etag1"`, fields))
		rec := <-ch
		assert.Equal(t, http.MethodPut, rec.method)
		assert.Equal(t, "/"+domain+"/full/c1", rec.path)
		assert.Equal(t, `"etag1"`, rec.ifMatch)
		assert.Equal(t, EncodeEntry(fields), rec.body)
	})

	t.Run("StaleETag", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		srv, _ := recordingServer(t, http.StatusPreconditionFailed)
		store := NewStore(srv.Client(), srv.URL, domain, zap.New(core))

		assert.False(t, store.Update(context.Background(), "c1", "stale", fields))
		require.Equal(t, 1, logs.FilterMessage("Contact changed since it was read").Len())
		assert.Equal(t, int64(412), logs.FilterMessage("Contact changed since it was read").All()[0].ContextMap()["status"])
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv, ch := recordingServer(t, http.StatusOK)
		store := NewStore(srv.Client(), srv.URL, domain, zap.NewNop())

		assert.True(t, store.Delete(context.Background(), "c9", "etag9", "gone@illinois.edu"))
		rec := <-ch
		assert.Equal(t, http.MethodDelete, rec.method)
		assert.Equal(t, "/"+domain+"/full/c9", rec.path)
		assert.Equal(t, "etag9", rec.ifMatch)
		assert.Empty(t, rec.ctype)
		assert.Empty(t, rec.body)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv, _ := recordingServer(t, http.StatusNotFound)
		store := NewStore(srv.Client(), srv.URL, domain, zap.NewNop())
		assert.False(t, store.Delete(context.Background(), "c9", "etag9", "gone@illinois.edu"))
	})
}

func TestStore_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	url := srv.URL
	srv.Close()

	store := NewStore(client, url, domain, zap.NewNop())
	fields := reconcile.Identity{PrimaryEmail: "a@illinois.edu"}

	assert.False(t, store.Create(context.Background(), fields))
	assert.False(t, store.Update(context.Background(), "c1", "e1", fields))
	assert.False(t, store.Delete(context.Background(), "c1", "e1", "a@illinois.edu"))

	_, err := store.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}
