package portal

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// SeedData is the dataset used to populate absent collections on first run.
// A custom dataset can be loaded from a yaml file, otherwise the built-in
// demo data is used.
type SeedData struct {
	Users     []User          `json:"users" yaml:"users"`
	Jobs      []Job           `json:"jobs" yaml:"jobs"`
	Trainings []Training      `json:"trainings" yaml:"trainings"`
	Community []CommunityPost `json:"community" yaml:"community"`
}

//go:generate go run ./internal/schema schema.json

//go:embed schema.json
var embeddedSchemaData []byte

// DefaultSeed returns the built-in demo dataset
func DefaultSeed() SeedData {
	return SeedData{
		Users: []User{
			{ID: "u_admin", Name: "Admin", Email: "admin@portal", Password: "admin123", Role: RoleAdmin},
			{ID: "u_emp", Name: "Employer Demo", Email: "emp@portal", Password: "emp123", Role: RoleEmployer},
			{ID: "u_js", Name: "Seema", Email: "seema@portal", Password: "js123", Role: RoleJobseeker},
		},
		Jobs: []Job{
			{ID: "j1", Title: "Farm Assistant", District: "Pune", Taluka: "Baramati", Village: "Karjat",
				Type: "Daily Wage", Salary: "₹250/day", Desc: "Assist with seeding, harvesting and basic farm work",
				PostedBy: "u_emp", Date: "2025-01-10"},
			{ID: "j2", Title: "Tailoring Apprentice", District: "Nashik", Taluka: "Sinnar", Village: "Dhulegaon",
				Type: "Apprenticeship", Salary: "Stipend", Desc: "Learn tailoring and help with local orders",
				PostedBy: "u_emp", Date: "2025-03-02"},
			{ID: "j3", Title: "Data Entry (Local Office)", District: "Nagpur", Taluka: "Kamptee", Village: "Gondpimpari",
				Type: "Part Time", Salary: "₹8000/month", Desc: "Maintain agriculture records and assist office tasks",
				PostedBy: "u_emp", Date: "2025-04-15"},
		},
		Trainings: []Training{
			{ID: "t1", Title: "Digital Literacy — 2 weeks", Provider: "Gov Skill", Desc: "Basics of computer use, MS Office & internet"},
			{ID: "t2", Title: "Welding & Fabrication — 1 month", Provider: "Local NGO", Desc: "Hands-on welding, safety & fabrication"},
			{ID: "t3", Title: "Mobile Repair Basics — 3 weeks", Provider: "Trade School", Desc: "Diagnose and repair common phone issues"},
		},
		Community: []CommunityPost{
			{ID: "c1", Author: "Seema", Content: "Completed digital literacy, now working as data entry!", Date: "2025-06-01"},
		},
	}
}

// EnsureInitialized seeds every absent collection with the built-in demo
// dataset. Collections that already exist are left untouched, so it is safe
// to call on every start.
func (r *Repository) EnsureInitialized() error {
	return r.EnsureInitializedFrom(DefaultSeed())
}

// EnsureInitializedFrom seeds every absent collection from the given dataset
// and guarantees a settings record. A welcome notification is recorded once,
// guarded by the settings flag.
func (r *Repository) EnsureInitializedFrom(seed SeedData) error {
	if err := seedCollection(r.Users, seed.Users); err != nil {
		return err
	}
	if err := seedCollection(r.Jobs, seed.Jobs); err != nil {
		return err
	}
	if err := seedCollection(r.Trainings, seed.Trainings); err != nil {
		return err
	}
	if err := seedCollection(r.Community, seed.Community); err != nil {
		return err
	}
	if err := seedCollection(r.Notifications, []Notification{}); err != nil {
		return err
	}

	settings, exists, err := r.loadSettings()
	if err != nil {
		return err
	}
	if !exists {
		settings = Settings{Lang: DefaultLanguage}
		if err := r.SaveSettings(settings); err != nil {
			return err
		}
		log.Printf("[INFO] initialized settings with language %q", settings.Lang)
	}

	if !settings.ShownWelcome {
		if _, err := r.Notify("Welcome to Local Job Portal"); err != nil {
			return err
		}
		settings.ShownWelcome = true
		if err := r.SaveSettings(settings); err != nil {
			return err
		}
	}
	return nil
}

// seedCollection writes the default records if and only if the key is absent
func seedCollection[T any](c *Collection[T], defaults []T) error {
	_, ok, err := c.store.Get(c.key)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", c.key, err)
	}
	if ok {
		return nil
	}
	if defaults == nil {
		defaults = []T{}
	}
	if err := c.save(defaults); err != nil {
		return err
	}
	log.Printf("[INFO] seeded %s with %d records", c.key, len(defaults))
	return nil
}

// LoadSeedFile reads and validates a yaml seed dataset
func LoadSeedFile(path string) (SeedData, error) {
	data, err := os.ReadFile(path) // nolint gosec // path comes from the operator
	if err != nil {
		return SeedData{}, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedData{}, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := VerifySeed(&seed); err != nil {
		return SeedData{}, fmt.Errorf("seed file %s rejected: %w", path, err)
	}
	return seed, nil
}

// VerifySeed validates the dataset against the embedded JSON schema and the
// portal invariants: ids present and unique per collection, emails unique,
// roles recognized, required fields non-empty
func VerifySeed(seed *SeedData) error {
	// parse embedded schema to make sure the build carries a valid one
	var schema map[string]interface{}
	if err := json.Unmarshal(embeddedSchemaData, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	ids := map[string]struct{}{}
	uniqueID := func(collection, id string) error {
		if id == "" {
			return fmt.Errorf("%s: record without id", collection)
		}
		key := collection + "/" + id
		if _, dup := ids[key]; dup {
			return fmt.Errorf("%s: duplicate id %q", collection, id)
		}
		ids[key] = struct{}{}
		return nil
	}

	emails := map[string]struct{}{}
	for i, u := range seed.Users {
		if err := uniqueID(CollectionUsers, u.ID); err != nil {
			return err
		}
		if u.Email == "" {
			return fmt.Errorf("user %d: email is required", i+1)
		}
		if _, dup := emails[u.Email]; dup {
			return fmt.Errorf("user %d: duplicate email %q", i+1, u.Email)
		}
		emails[u.Email] = struct{}{}
		if _, err := ParseRole(string(u.Role)); err != nil {
			return fmt.Errorf("user %d: %w", i+1, err)
		}
	}

	for i, j := range seed.Jobs {
		if err := uniqueID(CollectionJobs, j.ID); err != nil {
			return err
		}
		if j.Title == "" {
			return fmt.Errorf("job %d: title is required", i+1)
		}
	}

	for i, t := range seed.Trainings {
		if err := uniqueID(CollectionTrainings, t.ID); err != nil {
			return err
		}
		if t.Title == "" {
			return fmt.Errorf("training %d: title is required", i+1)
		}
	}

	for i, p := range seed.Community {
		if err := uniqueID(CollectionCommunity, p.ID); err != nil {
			return err
		}
		if p.Author == "" || p.Content == "" {
			return fmt.Errorf("community post %d: author and content are required", i+1)
		}
	}

	return nil
}

// GenerateSchema builds the JSON schema for the seed file format
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&SeedData{}), nil
}
