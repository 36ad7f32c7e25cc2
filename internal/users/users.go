// Package users stores user credential records and tracks which one is
// active for a run.
package users

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// User is one credential record: an arbitrary field→string mapping (e.g.
// "username", "password", "email").
type User struct {
	Fields map[string]string
}

// Field looks up a field, reporting whether it was present.
func (u *User) Field(name string) (string, bool) {
	if u == nil {
		return "", false
	}
	v, ok := u.Fields[name]
	return v, ok
}

// Store holds the loaded user list and tracks which one is active.
type Store struct {
	users  []*User
	active int
}

// NewStore wraps an in-memory user list, built programmatically or by a
// front-end. The first user is active by default.
func NewStore(users []*User) *Store {
	return &Store{users: users, active: 0}
}

// Load reads a YAML file of the form:
//
//	- username: alice
//	  password: hunter2
//	- username: bob
//	  password: trustno1
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("users: read %s: %w", path, err)
	}
	var records []map[string]string
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("users: parse %s: %w", path, err)
	}
	list := make([]*User, len(records))
	for i, r := range records {
		list[i] = &User{Fields: r}
	}
	return NewStore(list), nil
}

// Active returns the currently selected user, or nil if the store is empty.
func (s *Store) Active() *User {
	if s == nil || s.active < 0 || s.active >= len(s.users) {
		return nil
	}
	return s.users[s.active]
}

// SetActive selects a user by index.
func (s *Store) SetActive(index int) error {
	if index < 0 || index >= len(s.users) {
		return fmt.Errorf("users: index %d out of range [0,%d)", index, len(s.users))
	}
	s.active = index
	return nil
}

// Len reports how many users are loaded.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}
