package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wewg24/rlc-bingo-manager-v2/internal/config"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/dto"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/model"
	"github.com/wewg24/rlc-bingo-manager-v2/internal/repository"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[u.ID] = u
	return nil
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     username,
		Name:         "Test " + username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "chairman", "correct horse", "chairman", true)
	svc := NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "chairman", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "chairman", resp.User.Role)
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "lion1", "secret123", "lion", true)
	seedUser(t, repo, "gone", "secret123", "lion", false)
	svc := NewAuthService(repo, authTestConfig())

	cases := []dto.LoginRequest{
		{Username: "lion1", Password: "wrong"},
		{Username: "nobody", Password: "secret123"},
		{Username: "gone", Password: "secret123"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		// one opaque error for every failure mode, no username probing
		assert.EqualError(t, err, "invalid credentials")
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "admin1", "secret123", "admin", true)
	svc := NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin1", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), refreshed.User.ID)

	// deactivation kills outstanding refresh tokens
	require.NoError(t, svc.DeactivateUser(context.Background(), user.ID))
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), authTestConfig())
	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestCreateAndUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, authTestConfig())

	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "newlion", Name: "New Lion", Password: "secret123", Role: "lion",
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	id := uuid.MustParse(created.ID)
	newRole := "chairman"
	updated, err := svc.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, "chairman", updated.Role)

	// password change invalidates the old one
	newPassword := "evenmoresecret"
	_, err = svc.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "newlion", Password: "secret123"})
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "newlion", Password: newPassword})
	assert.NoError(t, err)
}
