package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/internal/ws"
	"github.com/alhadaf/pos/pkg/jwt"
)

var (
	// ErrInvalidCredentials is deliberately generic: unknown username and
	// wrong password are indistinguishable to the caller, which avoids user
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token       string             `json:"token"`
	User        model.UserResponse `json:"user"`
	Role        model.UserRole     `json:"role"`
	Permissions []string           `json:"permissions"` // Flat permission codes for easy checking
}

type TokenValidationResponse struct {
	User        model.UserResponse `json:"user"`
	Role        model.UserRole     `json:"role"`
	Permissions []string           `json:"permissions"`
}

type authService struct {
	userRepo    repository.UserRepository
	wsHub       *ws.Hub
	idleTimeout time.Duration
}

func NewAuthService(userRepo repository.UserRepository, hub *ws.Hub, idleTimeout time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		wsHub:       hub,
		idleTimeout: idleTimeout,
	}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: rotate the token version, stamp the login
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastLogin = &now
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT carrying the per-user capability set
	token, err := jwt.GenerateToken(user.ID, user.Username, user.FullName(), string(user.Role), user.GetPermissionCodes(), user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Role:        user.Role,
		Permissions: user.GetPermissionCodes(),
	}, nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Strict session check: a login elsewhere rotates the version
	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	// Idle timeout against the last heartbeat
	if user.LastSeenAt == nil || time.Since(*user.LastSeenAt) > s.idleTimeout {
		return nil, ErrSessionTimeout
	}

	return &TokenValidationResponse{
		User:        user.ToResponse(),
		Role:        user.Role,
		Permissions: user.GetPermissionCodes(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	if err := s.userRepo.UpdateLastSeen(userID); err != nil {
		return err
	}

	// Broadcast presence so freshly connected dashboards pick it up
	s.wsHub.Publish(map[string]interface{}{
		"type":         "user_status_update",
		"user_id":      userID.String(),
		"status":       "online",
		"last_seen_at": time.Now(),
	})

	return nil
}
