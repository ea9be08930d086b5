package identity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shelfmaster/backend/internal/domain/shared"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleStaff    UserRole = "STAFF"
	RoleBorrower UserRole = "BORROWER"
)

// IsValid checks if the role is a valid UserRole
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleBorrower:
		return true
	}
	return false
}

// String returns the string representation of UserRole
func (r UserRole) String() string {
	return string(r)
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User is a library account, either staff or borrower
type User struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	Status       UserStatus
}

// NewUser creates an active user account with a hashed credential
func NewUser(username, email, password, fullName string, role UserRole) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Username cannot be empty")
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "A valid email address is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid user role")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		FullName:          fullName,
		Role:              role,
		Status:            UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword validates and hashes a new credential
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext credential against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsActive reports whether the account may borrow or sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Deactivate suspends the account
func (u *User) Deactivate(now time.Time) error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError(shared.CodeInvalidState, "The account is already inactive")
	}
	u.Status = UserStatusInactive
	u.UpdatedAt = now
	return nil
}

// Activate reinstates the account
func (u *User) Activate(now time.Time) error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError(shared.CodeInvalidState, "The account is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = now
	return nil
}

