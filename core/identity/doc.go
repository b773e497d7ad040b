// Package identity provides the lookup-key function used to align records
// between the source directory and the destination contact store.
//
// # Lookup Key
//
// A record is keyed by its primary email, falling back to its secondary
// identifier (the user principal name). Keys are ASCII-lowercased, so
// "Primary@Example.COM" and "primary@example.com" match. A record with
// neither identifier has an empty key and is never matched.
//
// # Display Names
//
// ParseDisplayName is a best-effort splitter used when the source directory
// has no structured given/family name for a user.
package identity
