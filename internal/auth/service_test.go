package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rika4698/event-management-server/config"
)

type fakeRepo struct {
	nextID uint
	byID   map[uint]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: make(map[uint]User)}
}

func (f *fakeRepo) Create(user *User) error {
	user.ID = f.nextID
	f.nextID++
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByID(userID uint) (*User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := u
	return &out, nil
}

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string, string) error {
	return nil
}

const testSecret = "test-secret"

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	cfg := &config.Config{JWTSecret: testSecret, JWTTTLHours: 1}
	return NewService(repo, cfg, noopAudit{}), repo
}

func TestRegisterThenLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	err := svc.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	}, "127.0.0.1", "req-1")
	require.NoError(t, err)

	// The stored credential is a hash, never the plaintext
	stored, err := repo.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	token, user, err := svc.Login(ctx, LoginInput{
		Email:    "ada@example.com",
		Password: "hunter22",
	}, "127.0.0.1", "req-2")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)

	// Token carries the user id and verifies with our secret
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Contains(t, claims, "exp")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}
	require.NoError(t, svc.Register(ctx, in, "", ""))

	err := svc.Register(ctx, in, "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	}, "", ""))

	_, _, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "hunter22"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, repo.Create(&User{Name: "Ada", Email: "ada@example.com"}))

	u, err := svc.GetUserByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	_, err = svc.GetUserByID(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
