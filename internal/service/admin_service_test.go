package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type mockAdminRepo struct {
	admins    map[string]*models.Admin
	created   *models.Admin
	createErr error
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin, ok := m.admins[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return admin, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	if m.createErr != nil {
		return m.createErr
	}
	admin.ID = int64(len(m.admins) + 1)
	m.created = admin
	return nil
}

func TestAdminServiceLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	repo := &mockAdminRepo{admins: map[string]*models.Admin{
		"root": {ID: 1, Username: "root", PasswordHash: string(hash)},
	}}
	tokens := newTokenService()
	svc := NewAdminService(repo, tokens, validator.New(), zap.NewNop())

	res, err := svc.Login(context.Background(), models.AdminLoginRequest{Username: "root", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", res.Message)
	assert.Equal(t, "root", res.Username)

	claims, err := tokens.Verify(res.Token, models.TokenKindAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.TokenKindAdmin, claims.Kind)
}

func TestAdminServiceLoginUnknownAdmin(t *testing.T) {
	repo := &mockAdminRepo{admins: map[string]*models.Admin{}}
	svc := NewAdminService(repo, newTokenService(), validator.New(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.AdminLoginRequest{Username: "ghost", Password: "secret"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "Admin not found", appErr.Message)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Status, appErr.Status)
}

func TestAdminServiceLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	repo := &mockAdminRepo{admins: map[string]*models.Admin{
		"root": {ID: 1, Username: "root", PasswordHash: string(hash)},
	}}
	svc := NewAdminService(repo, newTokenService(), validator.New(), zap.NewNop())

	_, err := svc.Login(context.Background(), models.AdminLoginRequest{Username: "root", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "Invalid password", appErr.Message)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Status, appErr.Status)
}

func TestAdminServiceRegisterSuccess(t *testing.T) {
	repo := &mockAdminRepo{admins: map[string]*models.Admin{}}
	svc := NewAdminService(repo, newTokenService(), validator.New(), zap.NewNop())

	admin, err := svc.Register(context.Background(), models.AdminRegisterRequest{
		Username: "root",
		Password: "secret123",
		Email:    "root@example.com",
		Phone:    "0700000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret123")))
}

func TestAdminServiceRegisterDuplicate(t *testing.T) {
	repo := &mockAdminRepo{admins: map[string]*models.Admin{"root": {ID: 1, Username: "root"}}}
	svc := NewAdminService(repo, newTokenService(), validator.New(), zap.NewNop())

	_, err := svc.Register(context.Background(), models.AdminRegisterRequest{
		Username: "root",
		Password: "secret123",
		Email:    "root@example.com",
		Phone:    "0700000000",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
