package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	"github.com/supgamedex/gamedex-api/internal/domain/repository"
)

const entryColumns = `g.id, g.name, g.rawg_id, g.background_image, g.platforms, g.released,
       ug.comment, ug.rating, ug.progress, ug.status`

type LibraryRepository struct {
	db DB
}

func NewLibraryRepository(db DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) GetGameByRAWGID(ctx context.Context, rawgID int64) (*entity.Game, error) {
	g := &entity.Game{}
	row := r.db.QueryRow(ctx, `
		SELECT id, rawg_id, name, background_image, platforms, released, created_at
		FROM games
		WHERE rawg_id = $1
	`, rawgID)
	if err := row.Scan(&g.ID, &g.RAWGID, &g.Name, &g.BackgroundImage, &g.Platforms,
		&g.Released, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// Upsert runs the create-if-absent-then-associate sequence in one
// transaction. Two concurrent calls for the same new rawg_id serialize on
// the games.rawg_id uniqueness constraint: the loser's insert returns no
// row and it re-reads the winner's row instead of failing.
func (r *LibraryRepository) Upsert(ctx context.Context, userID int64, game entity.Game, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	gameID, err := ensureGame(ctx, tx, game)
	if err != nil {
		return nil, err
	}

	e := &entity.LibraryEntry{
		GameID:          gameID,
		Name:            game.Name,
		RAWGID:          game.RAWGID,
		BackgroundImage: game.BackgroundImage,
		Platforms:       game.Platforms,
		Released:        game.Released,
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO user_games (user_id, game_id, comment, rating, progress, status)
		VALUES ($1, $2, COALESCE($3, ''), $4, COALESCE($5, ''), COALESCE($6, 'played'))
		ON CONFLICT (user_id, game_id) DO UPDATE SET
			comment    = COALESCE($3, user_games.comment),
			rating     = COALESCE($4, user_games.rating),
			progress   = COALESCE($5, user_games.progress),
			status     = COALESCE($6, user_games.status),
			updated_at = now()
		RETURNING comment, rating, progress, status
	`, userID, gameID, upd.Comment, upd.Rating, upd.Progress, upd.Status)
	if err := row.Scan(&e.Comment, &e.Rating, &e.Progress, &e.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func ensureGame(ctx context.Context, tx pgx.Tx, game entity.Game) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM games WHERE rawg_id = $1`, game.RAWGID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO games (rawg_id, name, background_image, platforms, released)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (rawg_id) DO NOTHING
		RETURNING id
	`, game.RAWGID, game.Name, game.BackgroundImage, game.Platforms, game.Released).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// another caller committed the row between our check and insert
		err = tx.QueryRow(ctx, `SELECT id FROM games WHERE rawg_id = $1`, game.RAWGID).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *LibraryRepository) UpdateEntry(ctx context.Context, userID, gameID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	e := &entity.LibraryEntry{}
	row := r.db.QueryRow(ctx, `
		WITH updated AS (
			UPDATE user_games SET
				comment    = COALESCE($3, comment),
				rating     = COALESCE($4, rating),
				progress   = COALESCE($5, progress),
				status     = COALESCE($6, status),
				updated_at = now()
			WHERE user_id = $1 AND game_id = $2
			RETURNING game_id, comment, rating, progress, status
		)
		SELECT `+entryColumns+`
		FROM updated ug
		JOIN games g ON g.id = ug.game_id
	`, userID, gameID, upd.Comment, upd.Rating, upd.Progress, upd.Status)
	if err := scanEntry(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Remove deletes the association, then reclaims the Game row when the last
// reference is gone. Both run in one transaction.
func (r *LibraryRepository) Remove(ctx context.Context, userID, gameID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		DELETE FROM user_games WHERE user_id = $1 AND game_id = $2
	`, userID, gameID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM games
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM user_games WHERE game_id = $1)
	`, gameID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *LibraryRepository) ListByUser(ctx context.Context, userID int64) ([]entity.LibraryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM user_games ug
		JOIN games g ON g.id = ug.game_id
		WHERE ug.user_id = $1
		ORDER BY ug.created_at, g.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]entity.LibraryEntry, 0)
	for rows.Next() {
		var e entity.LibraryEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanEntry(row pgx.Row, e *entity.LibraryEntry) error {
	return row.Scan(&e.GameID, &e.Name, &e.RAWGID, &e.BackgroundImage, &e.Platforms,
		&e.Released, &e.Comment, &e.Rating, &e.Progress, &e.Status)
}

var _ repository.LibraryRepository = (*LibraryRepository)(nil)
