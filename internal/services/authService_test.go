package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andhrawala/internal/database"
	"andhrawala/internal/models"
	"andhrawala/internal/repositories"
)

func newTestAuthService(t *testing.T) (AuthService, repositories.SessionRepository) {
	t.Helper()
	db := database.New(filepath.Join(t.TempDir(), "users.json"))
	sessions := repositories.NewSessionRepository()
	return NewAuthService(repositories.NewUserRepository(db), sessions), sessions
}

func TestSignupThenLogin(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	_, err := svc.Signup(&models.SignupRequest{
		Contact:  "alice@example.com",
		Username: "alice",
		Password: "s3cret",
		DOB:      "1990-01-01",
	})
	require.NoError(t, err)

	token, err := svc.Login(&models.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, ok := sessions.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "alice@example.com", session.Contact)
}

func TestSignupClassifiesMobileContact(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Signup(&models.SignupRequest{
		Contact:  "9876543210",
		Username: "bala",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactTypeMobile, user.ContactType)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of signup")
}

func TestSignupRequiresFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	cases := []models.SignupRequest{
		{Username: "alice", Password: "x"},
		{Contact: "alice@example.com", Password: "x"},
		{Contact: "alice@example.com", Username: "alice"},
	}
	for _, req := range cases {
		_, err := svc.Signup(&req)
		assert.ErrorContains(t, err, "required")
	}
}

func TestSignupRejectsInvalidContact(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&models.SignupRequest{Contact: "not a contact", Username: "alice", Password: "x"})
	assert.ErrorContains(t, err, "invalid contact")
}

func TestSignupRejectsDuplicates(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&models.SignupRequest{Contact: "a@example.com", Username: "alice", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Signup(&models.SignupRequest{Contact: "a@example.com", Username: "other", Password: "x"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateContact)

	_, err = svc.Signup(&models.SignupRequest{Contact: "b@example.com", Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateUsername)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(&models.SignupRequest{Contact: "a@example.com", Username: "alice", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(&models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(&models.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorContains(t, err, "invalid credentials")
}
