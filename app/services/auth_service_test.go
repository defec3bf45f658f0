package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/auth"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
)

func newAuthService(t *testing.T) *services.AuthService {
	db := setupDB(t)
	return services.NewAuthService(repositories.NewUserRepository(db))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	res, err := svc.Register(services.RegisterInput{
		FirstName: "Sara",
		LastName:  "Khan",
		Email:     "sara@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleCustomer, res.User.Role)
	assert.Equal(t, "Khan", res.User.LastName)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "correct-horse", res.User.Password, "password must be hashed at rest")

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, rbac.RoleCustomer, claims.Role)

	login, err := svc.Login(services.LoginInput{Email: "sara@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	in := services.RegisterInput{FirstName: "Sara", LastName: "Khan", Email: "sara@example.com", Password: "correct-horse"}
	_, err := svc.Register(in)
	require.NoError(t, err)

	_, err = svc.Register(in)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(services.RegisterInput{
		FirstName: "Sara",
		LastName:  "Khan",
		Email:     "sara@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	// Wrong password and unknown email produce the same error, so a
	// caller cannot probe which emails exist.
	_, err = svc.Login(services.LoginInput{Email: "sara@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(services.LoginInput{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_MeUnknownID(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Me(404)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
