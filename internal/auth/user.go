// Package auth manages user accounts and login sessions for the registrar.
// Accounts are stored hashed (bcrypt); a successful login yields an opaque
// session token. The enrollment core never sees credentials, only the
// student id resolved from a session.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidUsername    = errors.New("username must not be empty")
	ErrStudentIDRequired  = errors.New("student accounts require a student id")
	ErrStudentIDTaken     = errors.New("student id already registered to another account")
	ErrSessionNotFound    = errors.New("session not found")
)

// Role controls which operations an account may perform.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is an account. Student accounts carry the student id they act as;
// admin accounts have none.
type User struct {
	username     string
	passwordHash []byte
	role         Role
	studentID    string
}

// NewUser creates an account with a freshly hashed password.
func NewUser(username, password string, role Role, studentID string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !role.Valid() {
		return nil, errors.New("unknown role: " + string(role))
	}
	if role == RoleStudent && strings.TrimSpace(studentID) == "" {
		return nil, ErrStudentIDRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		username:     username,
		passwordHash: hash,
		role:         role,
		studentID:    strings.TrimSpace(studentID),
	}, nil
}

// ReconstituteUser rebuilds an account from a stored hash without
// revalidation.
func ReconstituteUser(username, passwordHash string, role Role, studentID string) *User {
	return &User{
		username:     username,
		passwordHash: []byte(passwordHash),
		role:         role,
		studentID:    studentID,
	}
}

func (u *User) Username() string { return u.username }

func (u *User) Role() Role { return u.role }

// StudentID returns the linked student id, empty for admin accounts.
func (u *User) StudentID() string { return u.studentID }

// PasswordHash returns the stored bcrypt hash for persistence.
func (u *User) PasswordHash() string { return string(u.passwordHash) }

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
}

// SetPassword rehashes and replaces the password.
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	return nil
}
