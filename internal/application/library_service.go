package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	repo "github.com/supgamedex/gamedex-api/internal/domain/repository"
)

// CatalogGateway fetches normalized game records from the external catalog.
// *rawg.Client satisfies it.
type CatalogGateway interface {
	FetchByID(ctx context.Context, rawgID int64) (*entity.Game, error)
}

// LibraryService maintains each user's game library: it reconciles locally
// cached Game rows against the catalog and keeps the user_games
// associations. A (user, game) pair moves NONE -> TRACKED on first add,
// stays TRACKED on updates, and returns to NONE on remove.
type LibraryService struct {
	Users   repo.UserRepository
	Library repo.LibraryRepository
	Catalog CatalogGateway
	Logger  *logrus.Logger
}

func NewLibraryService(users repo.UserRepository, library repo.LibraryRepository, catalog CatalogGateway, logger *logrus.Logger) *LibraryService {
	return &LibraryService{Users: users, Library: library, Catalog: catalog, Logger: logger}
}

// AddOrUpdate adds a game to the user's library, fetching its metadata
// from the catalog on first sight of the rawg_id, or partially updates an
// existing entry. A catalog failure aborts the whole operation before any
// row is written.
func (s *LibraryService) AddOrUpdate(ctx context.Context, userID, rawgID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	game, err := s.Library.GetGameByRAWGID(ctx, rawgID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		game, err = s.Catalog.FetchByID(ctx, rawgID)
		if err != nil {
			return nil, err
		}
		s.Logger.WithFields(logrus.Fields{"rawg_id": rawgID, "name": game.Name}).
			Debug("fetched game from catalog")
	}

	return s.Library.Upsert(ctx, userID, *game, upd)
}

// UpdateEntry applies only the supplied fields to an existing entry.
func (s *LibraryService) UpdateEntry(ctx context.Context, userID, gameID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	e, err := s.Library.UpdateEntry(ctx, userID, gameID, upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// Remove deletes the entry; the storage layer reclaims the Game row when
// this was its last reference.
func (s *LibraryService) Remove(ctx context.Context, userID, gameID int64) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Library.Remove(ctx, userID, gameID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// List returns the user's entries in insertion order together with the
// owning user.
func (s *LibraryService) List(ctx context.Context, userID int64) (*entity.User, []entity.LibraryEntry, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	entries, err := s.Library.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return u, entries, nil
}
