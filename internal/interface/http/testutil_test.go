package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/supgamedex/gamedex-api/config"
	"github.com/supgamedex/gamedex-api/internal/application"
	"github.com/supgamedex/gamedex-api/internal/domain/entity"
	"github.com/supgamedex/gamedex-api/internal/domain/repository"
	"github.com/supgamedex/gamedex-api/internal/infrastructure/rawg"
	"github.com/supgamedex/gamedex-api/internal/interface/middleware"
	"github.com/supgamedex/gamedex-api/pkg/helpers"
	"github.com/supgamedex/gamedex-api/pkg/validation"
)

var setupOnce sync.Once

func testSetup() {
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
}

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

type memUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) SetActive(_ context.Context, email string) error {
	for _, u := range r.users {
		if u.Email == email {
			u.IsActive = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(_ context.Context, email, hash string) error {
	for _, u := range r.users {
		if u.Email == email {
			u.PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memUserRepo) seed(t *testing.T, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	r.nextID++
	u := &entity.User{ID: r.nextID, FirstName: "Ana", Email: email, PasswordHash: hash, IsActive: active}
	r.users[u.ID] = u
	return u
}

type memKey struct {
	userID, gameID int64
}

type memLibraryRepo struct {
	nextGameID int64
	games      map[int64]*entity.Game
	byRAWG     map[int64]int64
	entries    map[memKey]*entity.LibraryEntry
	order      []memKey
}

func newMemLibraryRepo() *memLibraryRepo {
	return &memLibraryRepo{
		games:   map[int64]*entity.Game{},
		byRAWG:  map[int64]int64{},
		entries: map[memKey]*entity.LibraryEntry{},
	}
}

func (r *memLibraryRepo) GetGameByRAWGID(_ context.Context, rawgID int64) (*entity.Game, error) {
	id, ok := r.byRAWG[rawgID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.games[id]
	return &cp, nil
}

func (r *memLibraryRepo) Upsert(_ context.Context, userID int64, game entity.Game, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	id, ok := r.byRAWG[game.RAWGID]
	if !ok {
		r.nextGameID++
		id = r.nextGameID
		game.ID = id
		cp := game
		r.games[id] = &cp
		r.byRAWG[game.RAWGID] = id
	}
	key := memKey{userID: userID, gameID: id}
	e, ok := r.entries[key]
	if !ok {
		e = &entity.LibraryEntry{GameID: id, Status: "played"}
		r.entries[key] = e
		r.order = append(r.order, key)
	}
	r.apply(e, upd)
	return r.view(key), nil
}

func (r *memLibraryRepo) UpdateEntry(_ context.Context, userID, gameID int64, upd entity.EntryUpdate) (*entity.LibraryEntry, error) {
	key := memKey{userID: userID, gameID: gameID}
	e, ok := r.entries[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.apply(e, upd)
	return r.view(key), nil
}

func (r *memLibraryRepo) Remove(_ context.Context, userID, gameID int64) error {
	key := memKey{userID: userID, gameID: gameID}
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

func (r *memLibraryRepo) ListByUser(_ context.Context, userID int64) ([]entity.LibraryEntry, error) {
	entries := make([]entity.LibraryEntry, 0)
	for _, key := range r.order {
		if key.userID == userID {
			entries = append(entries, *r.view(key))
		}
	}
	return entries, nil
}

func (r *memLibraryRepo) view(key memKey) *entity.LibraryEntry {
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

func (r *memLibraryRepo) apply(e *entity.LibraryEntry, upd entity.EntryUpdate) {
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

type stubCatalog struct {
	games map[int64]entity.Game
	err   error
}

func (c *stubCatalog) FetchByID(_ context.Context, rawgID int64) (*entity.Game, error) {
	if c.err != nil {
		return nil, c.err
	}
	g, ok := c.games[rawgID]
	if !ok {
		return nil, rawg.ErrNotFound
	}
	return &g, nil
}

type memQueue struct {
	jobs []any
}

func (q *memQueue) PublishJSON(_ context.Context, body any) error {
	q.jobs = append(q.jobs, body)
	return nil
}

func accountRouter(svc *application.AccountService) *gin.Engine {
	testSetup()
	r := gin.New()
	h := NewAccountHandler(svc, quietLogger())
	api := r.Group("/api")
	api.POST("/cadastro", h.Register)
	api.GET("/confirm-email", h.ConfirmEmail)
	api.POST("/login", h.Login)
	api.POST("/forgot-password", h.ForgotPassword)
	api.POST("/reset-password", h.ResetPassword)

	authed := api.Group("")
	authed.Use(middleware.Auth(svc.Tokens))
	authed.GET("/me", h.Me)
	return r
}

func libraryRouter(svc *application.LibraryService) *gin.Engine {
	testSetup()
	r := gin.New()
	h := NewLibraryHandler(svc, quietLogger())
	api := r.Group("/api")
	api.POST("/users/:user_id/games", h.AddGame)
	api.GET("/users/:user_id/games", h.ListGames)
	api.PUT("/users/:user_id/games/:game_id", h.UpdateGame)
	api.DELETE("/users/:user_id/games/:game_id", h.RemoveGame)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
