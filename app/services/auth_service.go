package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/pkg/auth"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
)

// AuthService implements registration and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"nullable,in=Customer,Admin,Manager"`
}

// LoginInput is the payload for signing in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what login and register hand back: the token and the
// user snapshot stored beside it by clients.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account. The default role is Customer.
func (s *AuthService) Register(in RegisterInput) (AuthResult, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResult{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	role := in.Role
	if role == "" {
		role = rbac.RoleCustomer
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      role,
	}
	if err := s.users.Create(&user); err != nil {
		return AuthResult{}, err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(in LoginInput) (AuthResult, error) {
	user, err := s.users.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user}, nil
}

// Me returns the account for an authenticated user ID.
func (s *AuthService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
