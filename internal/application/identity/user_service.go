package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// UserService manages library accounts
type UserService struct {
	userRepo  identity.UserRepository
	auditRepo audit.Repository
	clock     shared.Clock
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, auditRepo audit.Repository, clock shared.Clock, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		clock:     clock,
		logger:    logger,
	}
}

// Register creates a new account. Usernames and emails must be unique.
func (s *UserService) Register(ctx context.Context, actorID uuid.UUID, req RegisterUserRequest) (*UserResponse, error) {
	role := identity.UserRole(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown role %q", req.Role))
	}

	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err != nil && !shared.IsNotFound(err) {
		return nil, err
	} else if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username is already taken")
	}
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err != nil && !shared.IsNotFound(err) {
		return nil, err
	} else if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, req.FullName, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "USER_REGISTERED", fmt.Sprintf("Registered %s account %s", role, req.Username))

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword rotates a user's credential after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError(shared.CodeUnauthorized, "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.audit(ctx, userID, "PASSWORD_CHANGED", fmt.Sprintf("Password changed for %s", user.Username))
	return nil
}

// Deactivate suspends an account
func (s *UserService) Deactivate(ctx context.Context, actorID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.audit(ctx, actorID, "USER_DEACTIVATED", fmt.Sprintf("Deactivated account %s", user.Username))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate reinstates an account
func (s *UserService) Activate(ctx context.Context, actorID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.audit(ctx, actorID, "USER_ACTIVATED", fmt.Sprintf("Activated account %s", user.Username))
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves accounts with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses, total, nil
}

// ListByRole retrieves accounts holding a role, with pagination
func (s *UserService) ListByRole(ctx context.Context, role identity.UserRole, offset, limit int) ([]UserResponse, int64, error) {
	if !role.IsValid() {
		return nil, 0, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown role %q", role))
	}
	users, total, err := s.userRepo.ListByRole(ctx, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses, total, nil
}

func (s *UserService) audit(ctx context.Context, actorID uuid.UUID, action, details string) {
	entry, err := audit.NewEntry(actorID, action, details, s.clock.Now())
	if err != nil {
		s.logger.Warn("Failed to build audit entry", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.String("action", action), zap.Error(err))
	}
}
