// Package reconcile computes and executes the plan that makes the destination
// contact store mirror the source directory.
//
// # Architecture
//
// The engine works on two record sets read fresh on every run:
//
// 1. Source: the identities of the source directory, read through the Source
// interface. The source always wins.
//
// 2. Store: the contacts of the destination, read and written through the Store
// interface. Writes carry the contact's ETag; a stale ETag is rejected by the
// destination and counted as a failed operation.
//
// Records of both sets are keyed by identity.Key. When a set holds two records
// with the same key, the one seen last wins.
//
// # Plan
//
// BuildPlan is pure. For every source key:
//   - absent from the destination: create
//   - present with different given name, family name, display name or primary
//     email (exact comparison): update with the source fields
//   - present and identical: nothing
//
// Destination-only keys are deleted only when Options.DeleteRemoved is set.
//
// # Execution
//
// ApplyPlan runs all creates, then all updates, then all deletes. A failed
// operation does not abort the rest of the run, so the destination may end a
// run partially updated. The next run re-diffs and picks up whatever failed.
//
// # Usage Example
//
//	result, plan, err := reconcile.Reconcile(ctx, source, store, reconcile.Options{
//	    DeleteRemoved: true,
//	}, logger)
package reconcile
