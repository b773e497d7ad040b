// Package dirsync runs the directory-to-shared-contacts sync.
//
// A run loads the secret document, derives the contacts domain from the
// delegated Google user, builds the Entra source and the shared contacts
// store, and hands both to the reconcile engine. The outcome is returned as
// an envelope shaped like a scheduled function result:
//
//	{"statusCode": 200, "body": {"message": "Sync completed successfully", "environment": "prod", "stats": {...}}}
//	{"statusCode": 500, "body": {"message": "Sync failed", "error": "..."}}
//
// Failures of single contact writes never fail a run; they are counted in
// stats.errors. Configuration problems and failed reads do.
//
// # HTTP Endpoints
//
//   - POST /sync : Runs a sync. Optional JSON body: {"dryRun": bool, "keepRemoved": bool}.
//   - GET /sync/plan : Computes the plan without writing anything.
package dirsync
