package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reconcile runs one full sync: it reads the source and the destination,
// builds the plan and applies it.
//
// Both reads must succeed before any write is attempted; a read error is
// returned as is and nothing is written. Failures of individual writes are
// counted in Result.Errors and never returned as an error.
func Reconcile(ctx context.Context, src Source, store Store, opts Options, l *zap.Logger) (*Result, *Plan, error) {
	var (
		identities []Identity
		contacts   []Contact
	)

	// Read both sides concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identities, err = src.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch %s identities: %w", src.Name(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		contacts, err = store.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch %s contacts: %w", store.Name(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	plan := BuildPlan(identities, contacts, opts)
	summary := plan.Summary()
	l.Info("Sync plan calculated",
		zap.Int("to_create", summary.Create),
		zap.Int("to_update", summary.Update),
		zap.Int("to_delete", summary.Delete),
		zap.Bool("delete_removed", opts.DeleteRemoved),
		zap.Bool("dry_run", opts.DryRun),
	)

	result := ApplyPlan(ctx, store, plan, opts, l)
	result.TotalSourceRecords = len(identities)
	result.TotalDestinationRecords = len(IndexContacts(contacts))

	return &result, plan, nil
}

// ApplyPlan executes the plan against the store: every create, then every
// update, then every delete. A failed operation never stops the remaining
// ones; each outcome increments exactly one counter of the result.
//
// With opts.DryRun nothing is executed and the returned counters are zero.
func ApplyPlan(ctx context.Context, store Store, plan *Plan, opts Options, l *zap.Logger) Result {
	var result Result
	if opts.DryRun {
		l.Info("Dry-run mode: no changes will be made")
		return result
	}

	ok, failed := runPhase(len(plan.ToCreate), opts.Concurrency, func(i int) bool {
		fields := plan.ToCreate[i]
		return call(l, ActionCreate, fields.Key(), func() bool {
			return store.Create(ctx, fields)
		})
	})
	result.Created, result.Errors = ok, result.Errors+failed

	ok, failed = runPhase(len(plan.ToUpdate), opts.Concurrency, func(i int) bool {
		u := plan.ToUpdate[i]
		return call(l, ActionUpdate, u.Fields.Key(), func() bool {
			return store.Update(ctx, u.ID, u.ETag, u.Fields)
		})
	})
	result.Updated, result.Errors = ok, result.Errors+failed

	ok, failed = runPhase(len(plan.ToDelete), opts.Concurrency, func(i int) bool {
		d := plan.ToDelete[i]
		return call(l, ActionDelete, d.Key, func() bool {
			return store.Delete(ctx, d.ID, d.ETag, d.Key)
		})
	})
	result.Deleted, result.Errors = ok, result.Errors+failed

	l.Info("Sync plan applied",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
		zap.Int("errors", result.Errors),
	)

	return result
}

// runPhase runs op for indices [0, n) and counts the outcomes. The phase is
// complete when runPhase returns.
func runPhase(n, concurrency int, op func(i int) bool) (ok, failed int) {
	if concurrency < 2 {
		for i := 0; i < n; i++ {
			if op(i) {
				ok++
			} else {
				failed++
			}
		}
		return ok, failed
	}

	var okCount, failedCount atomic.Int64
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if op(i) {
				okCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(okCount.Load()), int(failedCount.Load())
}

// call invokes a store operation, turning a panic into a failure.
func call(l *zap.Logger, action ActionType, key string, fn func() bool) (success bool) {
	defer func() {
		if r := recover(); r != nil {
			l.Error("Store operation panicked",
				zap.String("action", string(action)),
				zap.String("key", key),
				zap.Any("panic", r),
			)
			success = false
		}
	}()
	return fn()
}
