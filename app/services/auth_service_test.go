package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	svc := services.NewAuthService(&fakeUserStore{})

	user, token, err := svc.Register(ctx, services.RegisterInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	// Duplicate email is rejected.
	_, _, err = svc.Register(ctx, services.RegisterInput{
		Name: "Asha Two", Email: "asha@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, token, err = svc.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	svc := services.NewAuthService(&fakeUserStore{})

	_, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, _, err = svc.Register(context.Background(), services.RegisterInput{
		Email: "asha@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestRegisterSellerRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := services.NewAuthService(&fakeUserStore{})
	user, _, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Meera", Email: "meera@example.com", Password: "secret123", IsSeller: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserStore{}
	svc := services.NewAuthService(users)

	u := models.User{Name: "Asha", Email: "asha@example.com", Phone: "111"}
	require.NoError(t, users.Create(ctx, &u))

	updated, err := svc.UpdateProfile(ctx, u.ID, "", "222", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, "222", updated.Phone)
}
