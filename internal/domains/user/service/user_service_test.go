package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"diary-backend/internal/domains/user/model"
	"diary-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byUsername map[string]*model.User
	byID       map[uuid.UUID]*model.User
	creates    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*model.User{},
		byID:       map[uuid.UUID]*model.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.creates++
	if _, ok := f.byUsername[u.Username]; ok {
		return nil, model.ErrUsernameTaken
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	f.byUsername[u.Username] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func newTestService(repo *fakeUserRepo) Service {
	return NewUserService(repo, jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour))
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "chronicler",
		Email:    "c@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "chronicler", resp.Username)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestRegisterDuplicateUsernamePerformsNoWrite(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "chronicler",
		Email:    "c@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	creates := repo.creates

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Username: "chronicler",
		Email:    "other@example.com",
		Password: "different456",
	})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
	assert.Equal(t, creates, repo.creates)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Username: "wanderer", Email: "w@example.com", PasswordHash: string(hash)}
	_, err = repo.Create(context.Background(), user)
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "wanderer",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Username: "wanderer",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
