package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"registrar/internal/auth"
	"registrar/internal/log"
)

const usersFile = "users_auth.csv"

var usersHeader = []string{"username", "password_hash", "role", "student_id"}

// UserStore persists accounts as users_auth.csv in a data directory. Only
// the bcrypt hash is ever written.
type UserStore struct {
	dir string
}

var _ auth.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore rooted at dir.
func NewUserStore(dir string) (*UserStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &UserStore{dir: dir}, nil
}

// LoadUsers reads the account table. A missing file yields an empty slice;
// rows without a username or hash are skipped with a warning.
func (s *UserStore) LoadUsers() ([]*auth.User, error) {
	path := filepath.Join(s.dir, usersFile)
	f, err := os.Open(path) //nolint:gosec // G304: path is within the configured data directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", usersFile, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerFields, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s header: %w", usersFile, err)
	}
	header := make(columnIndex, len(headerFields))
	for i, h := range headerFields {
		header[strings.TrimSpace(h)] = i
	}

	var users []*auth.User
	line := 1
	for {
		line++
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", usersFile, err)
		}

		username := header.field(fields, "username")
		hash := header.field(fields, "password_hash")
		if username == "" || hash == "" {
			log.Warn(log.CatAuth, "skipping malformed user row", "file", usersFile, "line", line)
			continue
		}
		role := auth.Role(header.field(fields, "role"))
		if !role.Valid() {
			role = auth.RoleStudent
		}
		users = append(users, auth.ReconstituteUser(username, hash, role, header.field(fields, "student_id")))
	}
	return users, nil
}

// SaveUsers rewrites the account table.
func (s *UserStore) SaveUsers(users []*auth.User) error {
	records := make([][]string, 0, len(users))
	for _, user := range users {
		records = append(records, []string{
			user.Username(),
			user.PasswordHash(),
			string(user.Role()),
			user.StudentID(),
		})
	}

	path := filepath.Join(s.dir, usersFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec // G304: path is within the configured data directory
	if err != nil {
		return fmt.Errorf("writing %s: %w", usersFile, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(usersHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", usersFile, err)
	}
	if err := writer.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", usersFile, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", usersFile, err)
	}
	return f.Close()
}
