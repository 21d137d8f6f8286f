package service

import (
	"testing"
	"time"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"

	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, userRepo repository.UserRepository, username, password string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      model.RoleCashier,
		IsActive:  true,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	seedUser(t, userRepo, "cashier1", "cashier123")

	resp, err := service.Login("cashier1", "cashier123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "cashier1", resp.User.Username)
	require.Equal(t, model.RoleCashier, resp.Role)

	stored, err := userRepo.FindByUsername("cashier1")
	require.NoError(t, err)
	require.NotEmpty(t, stored.TokenVersion)
	require.NotNil(t, stored.LastLogin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	seedUser(t, userRepo, "cashier1", "cashier123")

	// Unknown user and wrong password fail the same way.
	_, err := service.Login("nobody", "cashier123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login("cashier1", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	user := seedUser(t, userRepo, "cashier1", "cashier123")
	user.IsActive = false
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := service.Login("cashier1", "cashier123")
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestSecondLoginInvalidatesFirstSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	seedUser(t, userRepo, "cashier1", "cashier123")

	first, err := service.Login("cashier1", "cashier123")
	require.NoError(t, err)
	_, err = service.ValidateToken(first.Token)
	require.NoError(t, err)

	_, err = service.Login("cashier1", "cashier123")
	require.NoError(t, err)

	// The first token now carries a stale version.
	_, err = service.ValidateToken(first.Token)
	require.Error(t, err)
}

func TestValidateTokenIdleTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, time.Nanosecond)

	seedUser(t, userRepo, "cashier1", "cashier123")
	resp, err := service.Login("cashier1", "cashier123")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = service.ValidateToken(resp.Token)
	require.ErrorIs(t, err, ErrSessionTimeout)
}

func TestHeartbeatRefreshesSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	user := seedUser(t, userRepo, "cashier1", "cashier123")
	_, err := service.Login("cashier1", "cashier123")
	require.NoError(t, err)

	require.NoError(t, service.Heartbeat(user.ID))

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastSeenAt)
	require.WithinDuration(t, time.Now(), *stored.LastSeenAt, 5*time.Second)
}

func TestResetPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := testDB(t)
	userRepo := repository.NewUserRepo(db)
	service := NewAuthService(userRepo, nil, 5*time.Minute)

	seedUser(t, userRepo, "cashier1", "cashier123")

	require.ErrorIs(t, service.ResetPassword("cashier1", "wrong", "newpass123"), ErrWrongPassword)
	require.NoError(t, service.ResetPassword("cashier1", "cashier123", "newpass123"))

	_, err := service.Login("cashier1", "cashier123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = service.Login("cashier1", "newpass123")
	require.NoError(t, err)
}
