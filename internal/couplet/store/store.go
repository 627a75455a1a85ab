package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConflict reports a conditional write that matched no row because
	// another writer got there first.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Sub-repositories hang off it so a
// transaction-scoped Store exposes exactly the same surface.
type Store interface {
	Users() Users
	Profiles() Profiles
	Couples() Couples
	InviteCodes() InviteCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Calling it on a Tx returns sql.ErrTxDone.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A taken email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.Profile) error
	GetProfile(ctx context.Context, id string) (domain.Profile, error)

	// UpdateProfile sets display name and theme and bumps updated_at.
	UpdateProfile(ctx context.Context, id, displayName string, theme domain.Theme, now time.Time) error

	UpdateAvatar(ctx context.Context, id, url, blurhash string, now time.Time) error

	// LinkProfile sets couple_id and partner_id on a profile that is not yet
	// linked. ErrConflict if the profile already belongs to a couple.
	LinkProfile(ctx context.Context, id, coupleID, partnerID string, now time.Time) error
}

type Couples interface {
	CreateCouple(ctx context.Context, c domain.Couple) error
	GetCouple(ctx context.Context, id string) (domain.Couple, error)

	// ActivateCouple moves a pending couple to active with partner2 set.
	// ErrConflict if the couple is not pending.
	ActivateCouple(ctx context.Context, id, partner2ID string, now time.Time) error

	// FindPendingInvite returns the pending couple inviterID opened for email.
	FindPendingInvite(ctx context.Context, inviterID, email string) (domain.Couple, error)

	// ListPendingByEmail returns pending invites addressed to email whose
	// inviter is still unpaired, newest first.
	ListPendingByEmail(ctx context.Context, email string) ([]domain.Couple, error)
}

type InviteCodes interface {
	// CreateInviteCode inserts c. ErrAlreadyExists if an unconsumed,
	// unrevoked code with the same value exists.
	CreateInviteCode(ctx context.Context, c domain.InviteCode) error

	// GetLatestByOwner returns the owner's most recently created code.
	GetLatestByOwner(ctx context.Context, ownerID string) (domain.InviteCode, error)

	// GetByCode returns the row for code, preferring the unconsumed,
	// unrevoked one, then the newest.
	GetByCode(ctx context.Context, code string) (domain.InviteCode, error)

	// RevokeActive marks every unconsumed, unrevoked code of the owner as
	// revoked at now.
	RevokeActive(ctx context.Context, ownerID string, now time.Time) (int64, error)

	// Consume flips consumed exactly once. The row must still be unconsumed,
	// unrevoked and not expired at now, otherwise ErrConflict.
	Consume(ctx context.Context, id, consumedBy string, now time.Time) error

	// DeleteExpiredBefore removes codes whose expiry is before cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
