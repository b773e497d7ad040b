package dirsync

import (
	"context"
	"fmt"
	"time"

	"dirsync/core/config"
	"dirsync/core/identity"
	"dirsync/core/logger"
	"dirsync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options holds the non-secret settings of the service.
type Options struct {
	// Environment labels the runs (dev, prod).
	Environment string
	// Concurrency bounds in-flight store writes within a phase.
	Concurrency int
	// DryRun makes every run compute the plan only.
	DryRun bool
}

// Service runs syncs.
type Service struct {
	secrets config.SecretProvider
	sources SourceFactory
	stores  StoreFactory
	opts    Options
	logger  *zap.Logger
}

// NewService creates a sync service.
func NewService(secrets config.SecretProvider, sources SourceFactory, stores StoreFactory, opts Options, logger *zap.Logger) *Service {
	return &Service{
		secrets: secrets,
		sources: sources,
		stores:  stores,
		opts:    opts,
		logger:  logger,
	}
}

// run holds what a sync needs once the configuration has been resolved.
type run struct {
	settings *config.Settings
	source   reconcile.Source
	store    reconcile.Store
	options  reconcile.Options
	logger   *zap.Logger
}

// prepare resolves settings, domain and adapters. Nothing is fetched.
func (s *Service) prepare(ctx context.Context, ev Event) (*run, error) {
	l := logger.WithRun(s.logger, uuid.NewString(), s.opts.Environment)

	settings, err := config.LoadSettings(ctx, s.secrets, s.opts.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	domain, err := identity.Domain(settings.GoogleDelegatedUser)
	if err != nil {
		return nil, fmt.Errorf("failed to derive contacts domain from delegated user: %w", err)
	}

	source, err := s.sources(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory source: %w", err)
	}
	store, err := s.stores(ctx, settings, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact store: %w", err)
	}

	return &run{
		settings: settings,
		source:   source,
		store:    store,
		options: reconcile.Options{
			DeleteRemoved: settings.DeleteRemovedContacts && !ev.KeepRemoved,
			DryRun:        s.opts.DryRun || ev.DryRun,
			Concurrency:   s.opts.Concurrency,
		},
		logger: l.With(zap.String("domain", domain)),
	}, nil
}

// Run performs one sync and returns its envelope. It never panics out and
// never returns an error: every failure is reported in the envelope.
func (s *Service) Run(ctx context.Context, ev Event) (resp Response) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Sync panicked", zap.Any("panic", r))
			resp = Failure(fmt.Errorf("sync panicked: %v", r))
		}
	}()

	r, err := s.prepare(ctx, ev)
	if err != nil {
		s.logger.Error(MessageFailure, zap.Error(err))
		return Failure(err)
	}

	r.logger.Info("Starting sync",
		zap.Bool("delete_removed", r.options.DeleteRemoved),
		zap.Bool("dry_run", r.options.DryRun),
	)

	result, _, err := reconcile.Reconcile(ctx, r.source, r.store, r.options, r.logger)
	if err != nil {
		r.logger.Error(MessageFailure, zap.Error(err))
		return Failure(err)
	}

	r.logger.Info(MessageSuccess,
		zap.Int("total_source_records", result.TotalSourceRecords),
		zap.Int("total_destination_records", result.TotalDestinationRecords),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
		zap.Int("errors", result.Errors),
		zap.Duration("duration", time.Since(start)),
	)
	return Success(r.settings.Environment, *result)
}

// PlanReport is the outcome of a plan-only run.
type PlanReport struct {
	Environment             string                `json:"environment"`
	TotalSourceRecords      int                   `json:"totalSourceRecords"`
	TotalDestinationRecords int                   `json:"totalDestinationRecords"`
	DeleteRemoved           bool                  `json:"deleteRemoved"`
	Summary                 reconcile.PlanSummary `json:"summary"`
	Plan                    *reconcile.Plan       `json:"plan"`
}

// Plan reads both sides and computes the plan without writing anything.
func (s *Service) Plan(ctx context.Context, ev Event) (*PlanReport, error) {
	ev.DryRun = true

	r, err := s.prepare(ctx, ev)
	if err != nil {
		return nil, err
	}

	result, plan, err := reconcile.Reconcile(ctx, r.source, r.store, r.options, r.logger)
	if err != nil {
		return nil, err
	}

	return &PlanReport{
		Environment:             r.settings.Environment,
		TotalSourceRecords:      result.TotalSourceRecords,
		TotalDestinationRecords: result.TotalDestinationRecords,
		DeleteRemoved:           r.options.DeleteRemoved,
		Summary:                 plan.Summary(),
		Plan:                    plan,
	}, nil
}
