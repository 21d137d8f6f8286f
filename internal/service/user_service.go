package service

import (
	"errors"
	"fmt"

	"github.com/alhadaf/pos/internal/model"
	"github.com/alhadaf/pos/internal/repository"
	"github.com/alhadaf/pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrSelfDelete        = errors.New("cannot delete your own account")
	ErrInvalidRole       = errors.New("invalid role")
)

// CreateUserRequest carries the fields needed to onboard a staff member.
type CreateUserRequest struct {
	Username    string         `json:"username" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=6"`
	FirstName   string         `json:"first_name" validate:"required"`
	LastName    string         `json:"last_name" validate:"required"`
	Role        model.UserRole `json:"role" validate:"required"`
	Department  string         `json:"department"`
	PhoneNumber string         `json:"phone_number"`
	Permissions []string       `json:"permissions"`
}

// UpdateUserRequest updates profile fields; password and permissions have
// their own operations.
type UpdateUserRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	FirstName   string         `json:"first_name" validate:"required"`
	LastName    string         `json:"last_name" validate:"required"`
	Role        model.UserRole `json:"role" validate:"required"`
	Department  string         `json:"department"`
	PhoneNumber string         `json:"phone_number"`
	IsActive    bool           `json:"is_active"`
}

type UserService interface {
	CreateUser(req *CreateUserRequest, actorID string) (*model.User, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, actorID string) (*model.User, error)
	DeleteUser(id uuid.UUID, actorID uuid.UUID) error
	UpdatePermissions(id uuid.UUID, codes []string) error
	GetUser(id uuid.UUID) (*model.User, error)
	GetAllUsers() ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	permRepo repository.PermissionRepository
}

func NewUserService(userRepo repository.UserRepository, permRepo repository.PermissionRepository) UserService {
	return &userService{
		userRepo: userRepo,
		permRepo: permRepo,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest, actorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, ErrDuplicateUsername
	}

	permissions, err := s.permRepo.FindByCodes(req.Permissions)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		Permissions: permissions,
		IsActive:    true,
	}
	user.CreatedBy = actorID
	user.UpdatedBy = actorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, actorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Role = req.Role
	user.Department = req.Department
	user.PhoneNumber = req.PhoneNumber
	user.IsActive = req.IsActive
	user.UpdatedBy = actorID

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return ErrSelfDelete
	}
	return s.userRepo.Delete(id)
}

// UpdatePermissions replaces the user's capability set wholesale.
func (s *userService) UpdatePermissions(id uuid.UUID, codes []string) error {
	permissions, err := s.permRepo.FindByCodes(codes)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePermissions(id, permissions)
}

func (s *userService) GetUser(id uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}
