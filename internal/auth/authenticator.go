package auth

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"registrar/internal/log"
)

// UserStore persists the account table.
type UserStore interface {
	LoadUsers() ([]*User, error)
	SaveUsers(users []*User) error
}

// Session is an authenticated login. The token is opaque and unguessable.
type Session struct {
	Token     string
	Username  string
	Role      Role
	StudentID string
	CreatedAt time.Time
}

// Authenticator owns the account table and active sessions. Like the
// registry, it is driven by one caller at a time and has no internal
// locking.
type Authenticator struct {
	store    UserStore
	users    map[string]*User
	sessions map[string]*Session
}

// NewAuthenticator loads accounts from the store. An empty store is seeded
// with the default admin and sample student accounts so a fresh install is
// usable immediately.
func NewAuthenticator(store UserStore) (*Authenticator, error) {
	users, err := store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	a := &Authenticator{
		store:    store,
		users:    make(map[string]*User, len(users)),
		sessions: make(map[string]*Session),
	}
	for _, user := range users {
		a.users[user.Username()] = user
	}

	if len(a.users) == 0 {
		if err := a.seedDefaults(); err != nil {
			return nil, fmt.Errorf("seeding default accounts: %w", err)
		}
	}
	return a, nil
}

// seedDefaults creates the out-of-the-box accounts: admin/admin123 and
// student/student123 linked to S001.
func (a *Authenticator) seedDefaults() error {
	admin, err := NewUser("admin", "admin123", RoleAdmin, "")
	if err != nil {
		return err
	}
	student, err := NewUser("student", "student123", RoleStudent, "S001")
	if err != nil {
		return err
	}
	a.users[admin.Username()] = admin
	a.users[student.Username()] = student
	log.Info(log.CatAuth, "seeded default accounts")
	return a.save()
}

// Login verifies credentials and opens a session. Unknown username and
// wrong password return the same error, so login failures do not leak which
// accounts exist.
func (a *Authenticator) Login(username, password string) (*Session, error) {
	user, ok := a.users[username]
	if !ok || !user.CheckPassword(password) {
		log.Warn(log.CatAuth, "login rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		Username:  user.Username(),
		Role:      user.Role(),
		StudentID: user.StudentID(),
		CreatedAt: time.Now(),
	}
	a.sessions[session.Token] = session
	log.Info(log.CatAuth, "login", "username", username, "role", string(user.Role()))
	return session, nil
}

// Logout closes the session for the given token.
func (a *Authenticator) Logout(token string) error {
	session, ok := a.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	delete(a.sessions, token)
	log.Info(log.CatAuth, "logout", "username", session.Username)
	return nil
}

// Session resolves a token to its session.
func (a *Authenticator) Session(token string) (*Session, bool) {
	session, ok := a.sessions[token]
	return session, ok
}

// RegisterUser creates a new account and persists the table. A student id
// can back at most one account, so acting on a session always resolves to a
// single student.
func (a *Authenticator) RegisterUser(username, password string, role Role, studentID string) (*User, error) {
	if _, exists := a.users[username]; exists {
		return nil, ErrUserExists
	}
	if trimmed := strings.TrimSpace(studentID); trimmed != "" {
		for _, existing := range a.users {
			if existing.StudentID() == trimmed {
				return nil, ErrStudentIDTaken
			}
		}
	}
	user, err := NewUser(username, password, role, studentID)
	if err != nil {
		return nil, err
	}
	a.users[user.Username()] = user
	if err := a.save(); err != nil {
		delete(a.users, user.Username())
		return nil, err
	}
	log.Info(log.CatAuth, "user registered", "username", user.Username(), "role", string(role))
	return user, nil
}

// ChangePassword verifies the old password before replacing it.
func (a *Authenticator) ChangePassword(username, oldPassword, newPassword string) error {
	user, ok := a.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if !user.CheckPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return a.save()
}

// Users returns all accounts sorted by username.
func (a *Authenticator) Users() []*User {
	users := make([]*User, 0, len(a.users))
	for _, user := range a.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username() < users[j].Username() })
	return users
}

func (a *Authenticator) save() error {
	return a.store.SaveUsers(a.Users())
}
