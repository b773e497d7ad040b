package mocks

import (
	"context"

	"dirsync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of reconcile.Source
type Source struct {
	mock.Mock
}

func (m *Source) Name() string {
	return "mock-source"
}

func (m *Source) FetchAll(ctx context.Context) ([]reconcile.Identity, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]reconcile.Identity); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) Name() string {
	return "mock-store"
}

func (m *Store) FetchAll(ctx context.Context) ([]reconcile.Contact, error) {
	args := m.Called(ctx)
	if contacts, ok := args.Get(0).([]reconcile.Contact); ok {
		return contacts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Create(ctx context.Context, fields reconcile.Identity) bool {
	args := m.Called(ctx, fields)
	return args.Bool(0)
}

func (m *Store) Update(ctx context.Context, id, etag string, fields reconcile.Identity) bool {
	args := m.Called(ctx, id, etag, fields)
	return args.Bool(0)
}

func (m *Store) Delete(ctx context.Context, id, etag, key string) bool {
	args := m.Called(ctx, id, etag, key)
	return args.Bool(0)
}
