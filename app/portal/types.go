// Package portal implements the record store behind the job portal: typed
// collections persisted as serialized sequences in a key-value store, seeded
// once with demo data, with role-gated mutations over the jobs collection.
package portal

import "fmt"

// collection and singleton keys in the underlying store
const (
	CollectionUsers         = "users"
	CollectionJobs          = "jobs"
	CollectionTrainings     = "trainings"
	CollectionCommunity     = "community"
	CollectionNotifications = "notifications"

	KeySession   = "currentUser"
	KeySettings  = "settings"
	KeySavedJobs = "savedJobs"
)

// Role defines what a user is allowed to do
type Role string

// recognized roles
const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleJobseeker Role = "jobseeker"
)

// ParseRole converts a string to a Role, rejecting unknown values
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployer, RoleJobseeker:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is the identity and authorization subject. Password is plaintext by
// design, this is a demo record store with no real security.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Role     Role   `json:"role" yaml:"role"`
}

// Job is a posting owned by the user whose id matches PostedBy. The reference
// is soft, a job whose PostedBy matches no user is treated as guest-authored.
type Job struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	District string `json:"district" yaml:"district"`
	Taluka   string `json:"taluka" yaml:"taluka"`
	Village  string `json:"village" yaml:"village"`
	Type     string `json:"type" yaml:"type"`
	Salary   string `json:"salary" yaml:"salary"`
	Desc     string `json:"desc" yaml:"desc"`
	PostedBy string `json:"postedBy" yaml:"postedBy"`
	Date     string `json:"date" yaml:"date"` // ISO date, yyyy-mm-dd
}

// Training is read-only reference data, no CRUD exposed beyond listing
type Training struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Provider string `json:"provider" yaml:"provider"`
	Desc     string `json:"desc" yaml:"desc"`
}

// CommunityPost is an entry in the append-only community feed. Author is a
// free-text name, deliberately not a user reference.
type CommunityPost struct {
	ID      string `json:"id" yaml:"id"`
	Author  string `json:"author" yaml:"author"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date" yaml:"date"`
}

// Notification is a local feed record, newest first. Nothing is delivered
// anywhere, the collection only backs the in-app notification list.
type Notification struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// Settings is the singleton preferences record
type Settings struct {
	Lang         string `json:"lang"`
	ShownWelcome bool   `json:"shownWelcome,omitempty"`
}
