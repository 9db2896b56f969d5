package auth

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"venuebook/internal/shared/config"
	"venuebook/internal/users"
	"venuebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*users.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*users.User)}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id.String()]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id.String()]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = hashedPassword
	return nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	cfg := &config.Config{JWT: config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     time.Minute,
		RefreshExpiresIn: time.Hour,
	}}
	return NewService(repo, cfg, logger.Discard()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.Equal(t, string(users.RoleUser), registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	loggedIn, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.Type)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterRequest{Name: "Linus", Email: "linus@example.com", Password: "secret123"})
	require.NoError(t, err)

	userID := uuid.MustParse(registered.User.ID)

	err = svc.ChangePassword(ctx, userID, &ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.GetMe(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "linus@example.com", me.Email)

	require.NoError(t, svc.ChangePassword(ctx, userID, &ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Login(ctx, &LoginRequest{Email: "linus@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFailedAuthenticationIsLogged(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	cfg := &config.Config{JWT: config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     time.Minute,
		RefreshExpiresIn: time.Hour,
	}}
	svc := NewService(newFakeRepo(), cfg, logger.NewWithWriter(&buf, "info"))
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterRequest{Name: "Edsger", Email: "edsger@example.com", Password: "secret123"})
	require.NoError(t, err)
	buf.Reset()

	_, err = svc.Login(ctx, &LoginRequest{Email: "edsger@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, buf.String(), `"msg":"Authentication Failure"`)
	assert.Contains(t, buf.String(), `"reason":"wrong password"`)

	buf.Reset()
	_, err = svc.RefreshToken(ctx, registered.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, buf.String(), `"method":"refresh"`)
	assert.Contains(t, buf.String(), `"reason":"not a refresh token"`)
}
