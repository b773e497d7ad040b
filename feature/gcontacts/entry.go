package gcontacts

import (
	"strings"

	"dirsync/core/reconcile"
)

// feed is the JSON (alt=json) rendition of a contacts feed page.
type feed struct {
	Feed struct {
		Entry []entry `json:"entry"`
	} `json:"feed"`
}

type text struct {
	T string `json:"$t"`
}

type entry struct {
	ID   text   `json:"id"`
	ETag string `json:"gd$etag"`
	Name struct {
		GivenName  text `json:"gd$givenName"`
		FamilyName text `json:"gd$familyName"`
		FullName   text `json:"gd$fullName"`
	} `json:"gd$name"`
	Emails []email `json:"gd$email"`
}

type email struct {
	Address string `json:"address"`
	Rel     string `json:"rel"`
	Primary string `json:"primary"`
}

// toContact converts a feed entry. Entries without an email address are
// reported as false.
func (e entry) toContact() (reconcile.Contact, bool) {
	if len(e.Emails) == 0 {
		return reconcile.Contact{}, false
	}

	primary := e.Emails[0].Address
	for _, m := range e.Emails {
		if m.Primary == "true" {
			if m.Address != "" {
				primary = m.Address
			}
			break
		}
	}

	var other string
	for _, m := range e.Emails {
		if strings.Contains(m.Rel, "other") {
			other = m.Address
			break
		}
	}

	// The entry ID is the last segment of the entry URL.
	id := e.ID.T
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}

	etag := e.ETag
	if etag == "" {
		etag = "*"
	}

	display := e.Name.FullName.T
	if display == "" {
		display = primary
	}

	return reconcile.Contact{
		ID:   id,
		ETag: etag,
		Fields: reconcile.Identity{
			PrimaryEmail:   primary,
			SecondaryEmail: other,
			GivenName:      e.Name.GivenName.T,
			FamilyName:     e.Name.FamilyName.T,
			DisplayName:    display,
		},
	}, true
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

const (
	relWork  = "http://schemas.google.com/g/2005#work"
	relOther = "http://schemas.google.com/g/2005#other"
)

// EncodeEntry renders fields as an Atom contact entry. The secondary email
// is written only when it differs from the primary ignoring case.
func EncodeEntry(fields reconcile.Identity) string {
	var emails []string
	if fields.PrimaryEmail != "" {
		emails = append(emails, `    <gd:email rel="`+relWork+`" address="`+xmlEscaper.Replace(fields.PrimaryEmail)+`" primary="true" />`)
	}
	if fields.SecondaryEmail != "" && !strings.EqualFold(fields.SecondaryEmail, fields.PrimaryEmail) {
		emails = append(emails, `    <gd:email rel="`+relOther+`" address="`+xmlEscaper.Replace(fields.SecondaryEmail)+`" />`)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<atom:entry xmlns:atom="http://www.w3.org/2005/Atom"
            xmlns:gd="http://schemas.google.com/g/2005">
  <atom:category scheme="http://schemas.google.com/g/2005#kind"
                 term="http://schemas.google.com/contact/2008#contact" />
  <gd:name>
`)
	b.WriteString("    <gd:givenName>" + xmlEscaper.Replace(fields.GivenName) + "</gd:givenName>\n")
	b.WriteString("    <gd:familyName>" + xmlEscaper.Replace(fields.FamilyName) + "</gd:familyName>\n")
	b.WriteString("    <gd:fullName>" + xmlEscaper.Replace(fields.DisplayName) + "</gd:fullName>\n")
	b.WriteString("  </gd:name>\n")
	b.WriteString(strings.Join(emails, "\n"))
	b.WriteString("\n</atom:entry>")
	return b.String()
}
