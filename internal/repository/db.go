package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgx operations repositories rely on. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repositories run inside or outside a
// transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Set bundles the repositories that participate in multi-write flows.
type Set struct {
	Users            UserRepository
	Pets             PetRepository
	AdoptionListings AdoptionListingRepository
	BreederProfiles  BreederProfileRepository
	BreederListings  BreederListingRepository
	Applications     BreederApplicationRepository
	Payments         PaymentRepository
	Usages           ListingUsageRepository
}

// UnitOfWork runs a function against a repository Set bound to a single
// database transaction. Payment verification depends on this: mark-completed,
// usage-ledger insert and listing activation commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Set) error) error
}

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork returns a Postgres-backed UnitOfWork.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgxUnitOfWork{pool: pool}
}

func (u *pgxUnitOfWork) Do(ctx context.Context, fn func(Set) error) error {
	return pgx.BeginFunc(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(NewSet(tx))
	})
}

// NewSet builds repositories over the given DB handle.
func NewSet(db DB) Set {
	return Set{
		Users:            NewUserRepository(db),
		Pets:             NewPetRepository(db),
		AdoptionListings: NewAdoptionListingRepository(db),
		BreederProfiles:  NewBreederProfileRepository(db),
		BreederListings:  NewBreederListingRepository(db),
		Applications:     NewBreederApplicationRepository(db),
		Payments:         NewPaymentRepository(db),
		Usages:           NewListingUsageRepository(db),
	}
}
