package repository

import (
	"context"
	"errors"

	"github.com/supgamedex/gamedex-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by Create when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetActive activates the account with the given email. Activating an
	// already-active account is a no-op success.
	SetActive(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// LibraryRepository owns Game rows and user_games associations. Multi-step
// writes (create-if-absent then associate, delete then garbage-collect) run
// inside a single transaction so a failure midway commits nothing.
type LibraryRepository interface {
	GetGameByRAWGID(ctx context.Context, rawgID int64) (*entity.Game, error)
	// Upsert ensures a Game row for game.RAWGID exists and creates or
	// partially updates the caller's association with it.
	Upsert(ctx context.Context, userID int64, game entity.Game, upd entity.EntryUpdate) (*entity.LibraryEntry, error)
	// UpdateEntry applies only the supplied fields to an existing
	// association; ErrNotFound when no association exists.
	UpdateEntry(ctx context.Context, userID, gameID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error)
	// Remove deletes the association and reclaims the Game row when no
	// other association references it.
	Remove(ctx context.Context, userID, gameID int64) error
	ListByUser(ctx context.Context, userID int64) ([]entity.LibraryEntry, error)
}
