// Package gcontacts is the Google Workspace Domain Shared Contacts store.
//
// Store implements reconcile.Store over the GData v3 contacts feed of one
// domain. Reads page through the JSON feed 1000 entries at a time; writes
// send Atom XML entries. Updates and deletes carry the entry ETag in
// If-Match, so a contact changed since it was read is rejected with 412 and
// counted as a failed operation.
//
// Write operations never return errors: every failure is logged and reported
// as false so the run can continue.
//
// # Authentication
//
// NewHTTPClient signs requests as the service account impersonating the
// delegated Workspace user (domain-wide delegation, scope m8/feeds).
package gcontacts
