package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/pkg/auth"
)

// AuthService handles registration, login and profile access.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput is the payload for account creation. IsSeller opts the
// account into the seller (admin) role.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsSeller bool   `json:"isSeller"`
}

// Register creates an account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return models.User{}, "", fmt.Errorf("%w: name, email and a password of at least 6 characters are required", ErrValidation)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return models.User{}, "", fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	role := models.RoleUser
	if in.IsSeller {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the account with a signed
// token. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, "", ErrUnauthorized
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Profile returns the account for the given ID.
func (s *AuthService) Profile(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies the mutable profile fields and returns the
// updated account. Empty fields are left unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, phone, address, profilePic string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}
	if profilePic != "" {
		user.ProfilePic = profilePic
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
