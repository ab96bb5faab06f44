package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/fieldscope/fieldscope/internal/clock"
	"github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/fieldscope/fieldscope/internal/identity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo, sessionRepo := repository.Provide()
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:          conn,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Repo:        repo,
		SessionRepo: sessionRepo,
	})
	return svc, fake
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, verifyPassword("correct horse battery staple", hashed))
	assert.False(t, verifyPassword("wrong password", hashed))
	assert.False(t, verifyPassword("correct horse battery staple", "garbage"))
}

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("  Mixed.Case@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "mixed.case@example.com", email)

	for _, bad := range []string{"", "no-at-sign", "@example.com"} {
		_, err := NormalizeEmail(bad)
		assert.Error(t, err, "email %q", bad)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, domain.CreateUserRequest{Email: "A@Example.com", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestCreateUser_ShortPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_AuthenticateRoundTrip(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.CreateUserRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.RawToken)

	session, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	// sessions expire after their TTL
	fake.Advance(8 * 24 * time.Hour)
	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, domain.CreateUserRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, domain.CreateUserRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "password-two"))

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "password-two"})
	assert.NoError(t, err)
}
