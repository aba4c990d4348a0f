package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeSessionStore struct {
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionStore) Create(ctx context.Context, session *models.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionStore) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestAuthService(users *fakeUserStore, sessions *fakeSessionStore) *authServiceImpl {
	return &authServiceImpl{
		userRepo:    users,
		sessionRepo: sessions,
		sessionTTL:  time.Hour,
		now:         time.Now,
		logger:      zerolog.Nop(),
	}
}

func TestAuthService_RegisterOpensSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, sessions)

	user, session, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "ada@campus.edu",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, session)

	assert.NotZero(t, user.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// Password must be stored hashed, never in the clear
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeSessionStore())

	req := &dto.RegisterRequest{
		Email:     "ada@campus.edu",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeSessionStore())

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "ada@campus.edu",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@campus.edu",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeSessionStore())

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ResolveSessionHappyPath(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, sessions)

	user, session, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "ada@campus.edu",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestAuthService_ResolveSessionExpiredIsDeleted(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, sessions)

	_, session, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "ada@campus.edu",
		Password:  "secret123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	// Jump the clock past the TTL
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.ResolveSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// The expired row is gone, a second resolve reports not found
	_, err = svc.ResolveSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newTestAuthService(newFakeUserStore(), sessions)

	require.NoError(t, svc.Logout(context.Background(), "unknown-token"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}
