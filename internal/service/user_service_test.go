package service

import (
	"testing"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	permRepo := repository.NewPermissionRepo(db)
	require.NoError(t, permRepo.SeedDefaults())
	return NewUserService(repository.NewUserRepo(db), permRepo), db
}

func createRequest(username string) *CreateUserRequest {
	return &CreateUserRequest{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "secret123",
		FirstName:   "Test",
		LastName:    "User",
		Role:        model.RoleCashier,
		Permissions: []string{"pos_operate", "inventory_view"},
	}
}

func TestCreateUser(t *testing.T) {
	service, _ := newUserService(t)

	user, err := service.CreateUser(createRequest("cashier1"), "admin")
	require.NoError(t, err)
	require.True(t, user.IsActive)
	require.True(t, user.CheckPassword("secret123"))
	require.True(t, user.HasPermission("pos_operate"))
	require.False(t, user.HasPermission("staff_edit"))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	service, _ := newUserService(t)

	_, err := service.CreateUser(createRequest("cashier1"), "admin")
	require.NoError(t, err)

	dup := createRequest("cashier1")
	dup.Email = "other@example.com"
	_, err = service.CreateUser(dup, "admin")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	service, _ := newUserService(t)

	req := createRequest("cashier1")
	req.Role = "janitor"
	_, err := service.CreateUser(req, "admin")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	service, _ := newUserService(t)

	req := createRequest("cashier1")
	req.Password = "abc"
	_, err := service.CreateUser(req, "admin")
	require.Error(t, err)
}

func TestDeleteUserSelfGuard(t *testing.T) {
	service, _ := newUserService(t)

	user, err := service.CreateUser(createRequest("cashier1"), "admin")
	require.NoError(t, err)

	require.ErrorIs(t, service.DeleteUser(user.ID, user.ID), ErrSelfDelete)
	require.NoError(t, service.DeleteUser(user.ID, uuid.New()))

	_, err = service.GetUser(user.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdatePermissionsReplacesSet(t *testing.T) {
	service, _ := newUserService(t)

	user, err := service.CreateUser(createRequest("cashier1"), "admin")
	require.NoError(t, err)

	require.NoError(t, service.UpdatePermissions(user.ID, []string{"reports_view"}))

	stored, err := service.GetUser(user.ID)
	require.NoError(t, err)
	require.True(t, stored.HasPermission("reports_view"))
	require.False(t, stored.HasPermission("pos_operate"))
}

func TestUpdateUserProfile(t *testing.T) {
	service, _ := newUserService(t)

	user, err := service.CreateUser(createRequest("cashier1"), "admin")
	require.NoError(t, err)

	updated, err := service.UpdateUser(user.ID, &UpdateUserRequest{
		Email:     "promoted@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      model.RoleSupervisor,
		IsActive:  true,
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, model.RoleSupervisor, updated.Role)
	require.Equal(t, "promoted@example.com", updated.Email)
}
