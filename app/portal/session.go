package portal

import (
	"encoding/json"
	"fmt"
)

// Session is the cached identity of the currently acting user. It is a copy
// taken at login time, not a live reference - later changes to the user
// record don't propagate into an active session.
type Session struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// CanPostJob reports whether the session may create job postings
func (s *Session) CanPostJob() bool {
	if s == nil {
		return false
	}
	return s.Role == RoleAdmin || s.Role == RoleEmployer
}

// CanManageJob reports whether the session may edit or delete the given job.
// Admins manage any job, employers only their own postings.
func (s *Session) CanManageJob(job Job) bool {
	if s == nil {
		return false
	}
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleEmployer:
		return s.UserID == job.PostedBy
	}
	return false
}

// CanApply reports whether the session may apply to jobs, jobseekers only
func (s *Session) CanApply() bool {
	return s != nil && s.Role == RoleJobseeker
}

// CurrentSession returns the persisted session, nil if nobody is logged in
func (r *Repository) CurrentSession() (*Session, error) {
	data, ok, err := r.store.Get(KeySession)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var ses Session
	if err := json.Unmarshal(data, &ses); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &ses, nil
}

// SaveSession persists the session as the current one
func (r *Repository) SaveSession(ses *Session) error {
	data, err := json.Marshal(ses)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.store.Set(KeySession, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session, no-op if none
func (r *Repository) ClearSession() error {
	if err := r.store.Delete(KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
