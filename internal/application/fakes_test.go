package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/config"
	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	"github.com/supgamedex/gamedex-api/internal/domain/repository"
	"github.com/supgamedex/gamedex-api/internal/infrastructure/rawg"
	"github.com/supgamedex/gamedex-api/pkg/helpers"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		AccessTTL:        time.Hour,
		ConfirmTTL:       24 * time.Hour,
		ResetTTL:         30 * time.Minute,
		MailSendEnabled:  true,
		ConfirmEmailURL:  "https://gamedex.dev/confirm-email",
		ResetPasswordURL: "https://gamedex.dev/reset-password",
	}
}

func testTokens(cfg *config.Config) *helpers.TokenManager {
	return helpers.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL, cfg.ConfirmTTL, cfg.ResetTTL)
}

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) SetActive(_ context.Context, email string) error {
	for _, u := range r.byID {
		if u.Email == email {
			u.IsActive = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	for _, u := range r.byID {
		if u.Email == email {
			u.PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

// addActive seeds a confirmed account directly, bypassing registration.
func (r *fakeUserRepo) addActive(email string) *entity.User {
	r.nextID++
	u := &entity.User{ID: r.nextID, FirstName: "Test", Email: email, IsActive: true}
	r.byID[u.ID] = u
	return u
}

type libKey struct {
	userID, gameID int64
}

// fakeLibraryRepo mirrors the storage semantics in memory: games are
// created once per rawg_id, associations merge nil-skipping updates, and
// a game row is reclaimed with its last association.
type fakeLibraryRepo struct {
	nextGameID int64
	games      map[int64]*entity.Game
	byRAWG     map[int64]int64
	entries    map[libKey]*entity.LibraryEntry
	order      []libKey
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{
		games:   map[int64]*entity.Game{},
		byRAWG:  map[int64]int64{},
		entries: map[libKey]*entity.LibraryEntry{},
	}
}

func (r *fakeLibraryRepo) GetGameByRAWGID(_ context.Context, rawgID int64) (*entity.Game, error) {
	id, ok := r.byRAWG[rawgID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.games[id]
	return &cp, nil
}

func (r *fakeLibraryRepo) Upsert(_ context.Context, userID int64, game entity.Game, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	id, ok := r.byRAWG[game.RAWGID]
	if !ok {
		r.nextGameID++
		id = r.nextGameID
		game.ID = id
		cp := game
		r.games[id] = &cp
		r.byRAWG[game.RAWGID] = id
	}
	key := libKey{userID: userID, gameID: id}
	e, ok := r.entries[key]
	if !ok {
		e = &entity.LibraryEntry{GameID: id, Status: "played"}
		r.entries[key] = e
		r.order = append(r.order, key)
	}
	applyUpdate(e, upd)
	return r.view(key), nil
}

func (r *fakeLibraryRepo) UpdateEntry(_ context.Context, userID, gameID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	key := libKey{userID: userID, gameID: gameID}
	e, ok := r.entries[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	applyUpdate(e, upd)
	return r.view(key), nil
}

func (r *fakeLibraryRepo) Remove(_ context.Context, userID, gameID int64) error {
	key := libKey{userID: userID, gameID: gameID}
	if _, ok := r.entries[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for k := range r.entries {
		if k.gameID == gameID {
			return nil
		}
	}
	delete(r.byRAWG, r.games[gameID].RAWGID)
	delete(r.games, gameID)
	return nil
}

func (r *fakeLibraryRepo) ListByUser(_ context.Context, userID int64) ([]entity.LibraryEntry, error) {
	entries := make([]entity.LibraryEntry, 0)
	for _, key := range r.order {
		if key.userID == userID {
			entries = append(entries, *r.view(key))
		}
	}
	return entries, nil
}

func (r *fakeLibraryRepo) view(key libKey) *entity.LibraryEntry {
	e := r.entries[key]
	g := r.games[key.gameID]
	cp := *e
	cp.Name = g.Name
	cp.RAWGID = g.RAWGID
	cp.BackgroundImage = g.BackgroundImage
	cp.Platforms = g.Platforms
	cp.Released = g.Released
	return &cp
}

func applyUpdate(e *entity.LibraryEntry, upd entity.EntryUpdate) {
	if upd.Comment != nil {
		e.Comment = *upd.Comment
	}
	if upd.Rating != nil {
		e.Rating = upd.Rating
	}
	if upd.Progress != nil {
		e.Progress = *upd.Progress
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
}

type fakeCatalog struct {
	games   map[int64]entity.Game
	fetches int
}

func newFakeCatalog(games ...entity.Game) *fakeCatalog {
	c := &fakeCatalog{games: map[int64]entity.Game{}}
	for _, g := range games {
		c.games[g.RAWGID] = g
	}
	return c
}

func (c *fakeCatalog) FetchByID(_ context.Context, rawgID int64) (*entity.Game, error) {
	c.fetches++
	g, ok := c.games[rawgID]
	if !ok {
		return nil, rawg.ErrNotFound
	}
	return &g, nil
}

type fakeQueue struct {
	jobs    []any
	failErr error
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	if q.failErr != nil {
		return q.failErr
	}
	q.jobs = append(q.jobs, body)
	return nil
}
