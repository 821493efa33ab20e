// Package auth resolves the current user: login, signup, logout and the
// persisted session. Credentials are demo-grade exact matches against the
// user collection, there is deliberately no real security here.
package auth

import (
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/ruraljobs/portal/app/portal"
)

// ErrInvalidCredentials indicates login failure. Which of email, password or
// role mismatched is never revealed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrDuplicateEmail indicates signup with an already registered email
var ErrDuplicateEmail = errors.New("email already registered")

// Service authenticates against the user collection and keeps the current
// session persisted in the store
type Service struct {
	repo *portal.Repository
}

// NewService makes an auth service over the repository
func NewService(repo *portal.Repository) *Service {
	return &Service{repo: repo}
}

// Login finds a user matching email, password and role exactly and makes it
// the current session. Any mismatch yields ErrInvalidCredentials.
func (s *Service) Login(email, password string, role portal.Role) (*portal.Session, error) {
	users, err := s.repo.Users.All()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password && u.Role == role {
			ses := &portal.Session{UserID: u.ID, Name: u.Name, Role: u.Role}
			if err := s.repo.SaveSession(ses); err != nil {
				return nil, err
			}
			log.Printf("[INFO] user %s logged in as %s", u.ID, u.Role)
			return ses, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Signup registers a new user and logs it in. Fails with ErrDuplicateEmail
// if the email is taken, leaving the user collection unchanged.
func (s *Service) Signup(name, email, password string, role portal.Role) (*portal.Session, error) {
	for field, val := range map[string]string{"name": name, "email": email, "password": password} {
		if val == "" {
			return nil, &portal.ValidationError{Field: field, Reason: "required field is empty"}
		}
	}
	if _, err := portal.ParseRole(string(role)); err != nil {
		return nil, &portal.ValidationError{Field: "role", Reason: err.Error()}
	}

	users, err := s.repo.Users.All()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("signup %s: %w", email, ErrDuplicateEmail)
		}
	}

	user, err := s.repo.Users.Insert(portal.User{Name: name, Email: email, Password: password, Role: role})
	if err != nil {
		return nil, err
	}

	ses := &portal.Session{UserID: user.ID, Name: user.Name, Role: user.Role}
	if err := s.repo.SaveSession(ses); err != nil {
		return nil, err
	}
	log.Printf("[INFO] user %s signed up as %s", user.ID, user.Role)
	return ses, nil
}

// Logout clears the current session, safe to call when nobody is logged in
func (s *Service) Logout() error {
	if err := s.repo.ClearSession(); err != nil {
		return err
	}
	log.Printf("[INFO] session cleared")
	return nil
}

// Current returns the persisted session, nil if anonymous
func (s *Service) Current() (*portal.Session, error) {
	return s.repo.CurrentSession()
}
