package domain

import (
	"errors"
	"strings"
	"time"
)

// UserStatus enumerates account states.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

var (
	ErrEmptyUserName     = errors.New("user name must not be empty")
	ErrEmptyEmail        = errors.New("user email must not be empty")
	ErrInvalidEmail      = errors.New("user email is malformed")
	ErrInvalidUserStatus = errors.New("user status must be active or suspended")
	ErrMissingRole       = errors.New("user role is required")
)

// User is a registered person. The credential is an opaque hash produced by
// the identity collaborator and is never interpreted here.
type User struct {
	ID             int64
	Name           string
	Email          string
	CredentialHash string
	RoleID         int64
	Status         UserStatus
	ContactNumber  string
	Address        string
	CreatedAt      time.Time
}

// NewUser validates and constructs a User. An empty status defaults to active.
func NewUser(name, email, credentialHash string, roleID int64, status UserStatus, contactNumber, address string, createdAt time.Time) (*User, error) {
	user := &User{
		Name:           strings.TrimSpace(name),
		Email:          strings.TrimSpace(email),
		CredentialHash: credentialHash,
		RoleID:         roleID,
		Status:         status,
		ContactNumber:  strings.TrimSpace(contactNumber),
		Address:        strings.TrimSpace(address),
		CreatedAt:      createdAt,
	}
	if user.Status == "" {
		user.Status = UserStatusActive
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// ParseUserStatus accepts a status case-insensitively. Empty input yields active.
func ParseUserStatus(raw string) (UserStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(UserStatusActive):
		return UserStatusActive, nil
	case string(UserStatusSuspended):
		return UserStatusSuspended, nil
	default:
		return "", ErrInvalidUserStatus
	}
}

// Validate enforces invariants on the user.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.RoleID <= 0 {
		return ErrMissingRole
	}
	if u.Status != UserStatusActive && u.Status != UserStatusSuspended {
		return ErrInvalidUserStatus
	}
	return nil
}

// Rename changes the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUserName
	}
	u.Name = name
	return nil
}

// ChangeEmail replaces the email address.
func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// UpdateContact replaces the contact details. Nil leaves a field unchanged.
func (u *User) UpdateContact(contactNumber, address *string) {
	if contactNumber != nil {
		u.ContactNumber = strings.TrimSpace(*contactNumber)
	}
	if address != nil {
		u.Address = strings.TrimSpace(*address)
	}
}

// SetStatus moves the account between active and suspended.
func (u *User) SetStatus(status UserStatus) error {
	if status != UserStatusActive && status != UserStatusSuspended {
		return ErrInvalidUserStatus
	}
	u.Status = status
	return nil
}
