package gcontacts

import (
	"encoding/json"
	"testing"

	"dirsync/core/reconcile"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntry(t *testing.T) {
	tests := []struct {
		name   string
		fields reconcile.Identity
	}{
		{
			name: "entry_full",
			fields: reconcile.Identity{
				PrimaryEmail:   "john.doe@illinois.edu",
				SecondaryEmail: "jdoe@illinois.edu",
				GivenName:      "John",
				FamilyName:     "Doe",
				DisplayName:    "John Doe",
			},
		},
		{
			name: "entry_same_secondary",
			fields: reconcile.Identity{
				PrimaryEmail:   "Jane.Roe@illinois.edu",
				SecondaryEmail: "jane.roe@ILLINOIS.edu",
				GivenName:      "Jane",
				FamilyName:     "Roe",
				DisplayName:    "Jane Roe",
			},
		},
		{
			name: "entry_escaped",
			fields: reconcile.Identity{
				PrimaryEmail: "tom&jerry@illinois.edu",
				GivenName:    `Tom & "Jerry"`,
				FamilyName:   "O'Brien",
				DisplayName:  "<Tom>",
			},
		},
		{
			name: "entry_secondary_only",
			fields: reconcile.Identity{
				SecondaryEmail: "solo@illinois.edu",
				GivenName:      "Solo",
				DisplayName:    "Solo",
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(EncodeEntry(tt.fields)))
		})
	}
}

func TestEntry_ToContact(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want reconcile.Contact
		ok   bool
	}{
		{
			name: "Full entry",
			raw: `{
				"id": {"$t": "http://www.google.com/m8/feeds/contacts/acm.illinois.edu/base/abc123"},
				"gd$etag": "\"Q3c6eDVSLit7I2A9XRZRFk0MQA0.\"",
				"gd$name": {
					"gd$givenName": {"$t": "John"},
					"gd$familyName": {"$t": "Doe"},
					"gd$fullName": {"$t": "John Doe"}
				},
				"gd$email": [
					{"address": "jdoe@illinois.edu", "rel": "http://schemas.google.com/g/2005#other"},
					{"address": "john.doe@illinois.edu", "rel": "http://schemas.google.com/g/2005#work", "primary": "true"}
				]
			}`,
			want: reconcile.Contact{
				ID:   "abc123",
				ETag: `"Q3c6eDVSLit7I2A9XRZRFk0MQA0."`,
				Fields: reconcile.Identity{
					PrimaryEmail:   "john.doe@illinois.edu",
					SecondaryEmail: "jdoe@illinois.edu",
					GivenName:      "John",
					FamilyName:     "Doe",
					DisplayName:    "John Doe",
				},
			},
			ok: true,
		},
		{
			name: "Defaults",
			raw: `{
				"id": {"$t": "http://www.google.com/m8/feeds/contacts/acm.illinois.edu/base/def"},
				"gd$email": [{"address": "first@illinois.edu", "rel": "http://schemas.google.com/g/2005#work"}]
			}`,
			want: reconcile.Contact{
				ID:   "def",
				ETag: "*",
				Fields: reconcile.Identity{
					PrimaryEmail: "first@illinois.edu",
					DisplayName:  "first@illinois.edu",
				},
			},
			ok: true,
		},
		{
			name: "No emails",
			raw:  `{"id": {"$t": "http://www.google.com/m8/feeds/contacts/acm.illinois.edu/base/none"}}`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e entry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &e))

			got, ok := e.toContact()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
