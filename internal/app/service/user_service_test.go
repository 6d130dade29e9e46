package service

import (
	"context"
	"testing"

	"adoptme/internal/common"
	"adoptme/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(userRepo *mockUserRepo, id, email string) *model.User {
	user := &model.User{ID: id, FirstName: "Ana", LastName: "Garcia", Email: email, Role: model.RoleUser, Pets: []string{}}
	userRepo.add(user)
	return user
}

func strPtr(s string) *string { return &s }

func TestUpdateUserRejectsPasswordField(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	seedUser(userRepo, "u1", "ana@example.com")

	err := svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{
		FirstName: strPtr("Maria"),
		Password:  strPtr("newpassword"),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	// Nothing else from the payload applied either.
	assert.Equal(t, "Ana", userRepo.users["u1"].FirstName)
}

func TestUpdateUserRequiresBody(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	seedUser(userRepo, "u1", "ana@example.com")

	err := svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	seedUser(userRepo, "u1", "ana@example.com")
	seedUser(userRepo, "u2", "maria@example.com")

	err := svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{Email: strPtr("maria@example.com")})
	assert.ErrorIs(t, err, common.ErrConflict)

	// Re-submitting the current email is not a conflict.
	err = svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{Email: strPtr("ana@example.com"), FirstName: strPtr("Maria")})
	require.NoError(t, err)
	assert.Equal(t, "Maria", userRepo.users["u1"].FirstName)
}

func TestUpdateUserValidatesRole(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	seedUser(userRepo, "u1", "ana@example.com")

	err := svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{Role: strPtr("superuser")})
	assert.ErrorIs(t, err, common.ErrValidation)

	err = svc.UpdateUser(context.Background(), "u1", UpdateUserRequest{Role: strPtr(model.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, userRepo.users["u1"].Role)
}

func TestGetAndDeleteMissingUser(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)

	_, err := svc.GetUser(context.Background(), "missing")
	assert.Equal(t, "USER_NOT_FOUND", common.ErrorKind(err))

	err = svc.DeleteUser(context.Background(), "missing")
	assert.Equal(t, "USER_NOT_FOUND", common.ErrorKind(err))
}

func TestDeleteUser(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewUserService(userRepo)
	seedUser(userRepo, "u1", "ana@example.com")

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	assert.Empty(t, userRepo.users)
}
