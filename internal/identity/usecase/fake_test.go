package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/hash"
	"github.com/shandysiswandi/gotask/internal/pkg/jwt"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]entity.User
	getErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]entity.User{}}
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Username == user.Username {
			return goerror.ErrConflict
		}
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) delete(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

type fakeTokens struct {
	mu    sync.Mutex
	clock clock.Clocker
	recs  map[string]entity.RefreshToken
}

func newFakeTokens(c clock.Clocker) *fakeTokens {
	return &fakeTokens{clock: c, recs: map[string]entity.RefreshToken{}}
}

func (f *fakeTokens) CreateRefreshToken(_ context.Context, rec entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recs[rec.Token]; ok {
		return goerror.ErrConflict
	}
	f.recs[rec.Token] = rec
	return nil
}

func (f *fakeTokens) GetRefreshToken(_ context.Context, token string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[token]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeTokens) IsRefreshTokenValid(_ context.Context, userID int64, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recs[token]
	return ok && rec.UserID == userID && rec.ValidAt(f.clock.Now()), nil
}

func (f *fakeTokens) DeleteRefreshToken(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.recs[token]
	delete(f.recs, token)
	return ok, nil
}

func (f *fakeTokens) RotateRefreshToken(_ context.Context, oldToken string, rec entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recs[oldToken]; !ok {
		return goerror.ErrNotFound
	}
	if _, ok := f.recs[rec.Token]; ok {
		return goerror.ErrConflict
	}
	delete(f.recs, oldToken)
	f.recs[rec.Token] = rec
	return nil
}

func (f *fakeTokens) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

func (f *fakeTokens) clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = map[string]entity.RefreshToken{}
}

type fakeMessaging struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	ended      []SessionEndedEvent
	err        error
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)
	return f.err
}

func (f *fakeMessaging) PublishSessionEnded(_ context.Context, msg SessionEndedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = append(f.ended, msg)
	return f.err
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type harness struct {
	uc       *Usecase
	users    *fakeUsers
	tokens   *fakeTokens
	msg      *fakeMessaging
	clock    *clock.Frozen
	password hash.Hash
	digest   *hash.HMACSHA256
}

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, session SessionConfig) *harness {
	t.Helper()

	return newHarnessWithPassword(t, session, hash.NewBcrypt(bcrypt.MinCost, ""))
}

func newHarnessWithPassword(t *testing.T, session SessionConfig, password hash.Hash) *harness {
	t.Helper()

	clk := clock.NewFrozen(testNow)

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	codec, err := jwt.NewHS256(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("NewHS256() error = %v", err)
	}

	h := &harness{
		users:    newFakeUsers(),
		tokens:   newFakeTokens(clk),
		msg:      &fakeMessaging{},
		clock:    clk,
		password: password,
		digest:   hash.NewHMACSHA256("digest-key"),
	}
	h.uc = New(Dependency{
		RepoUser:      h.users,
		RepoToken:     h.tokens,
		RepoMessaging: h.msg,
		Validator:     v,
		Password:      h.password,
		Digest:        h.digest,
		Codec:         codec,
		UID:           &seqID{},
		Clock:         clk,
		Session:       session,
	})

	return h
}

func (h *harness) seedUser(t *testing.T, id int64, username, password string) entity.User {
	t.Helper()

	hashed, err := h.password.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	u := entity.User{ID: id, Username: username, PasswordHash: string(hashed), CreatedAt: testNow}
	if err := h.users.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u
}

func defaultSession() SessionConfig {
	return SessionConfig{AccessTTL: 30 * time.Minute, RefreshTTL: 10080 * time.Minute, RotateRefreshToken: true}
}
