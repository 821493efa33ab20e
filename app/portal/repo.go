package portal

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/ruraljobs/portal/app/store"
)

// Repository provides typed CRUD over the portal collections. Every mutation
// rewrites the full collection sequence in the store, so persistence is
// atomic from the caller's perspective.
type Repository struct {
	Users         *Collection[User]
	Jobs          *Collection[Job]
	Trainings     *Collection[Training]
	Community     *Collection[CommunityPost]
	Notifications *Collection[Notification]

	store store.Store
	now   func() time.Time
}

// NewRepository makes a repository over the given store
func NewRepository(st store.Store) *Repository {
	r := &Repository{store: st, now: time.Now}
	r.Users = &Collection[User]{store: st, key: CollectionUsers, idPrefix: "u",
		id: func(u *User) *string { return &u.ID }}
	r.Jobs = &Collection[Job]{store: st, key: CollectionJobs, idPrefix: "j", prepend: true,
		id: func(j *Job) *string { return &j.ID }}
	r.Trainings = &Collection[Training]{store: st, key: CollectionTrainings, idPrefix: "t",
		id: func(t *Training) *string { return &t.ID }}
	r.Community = &Collection[CommunityPost]{store: st, key: CollectionCommunity, idPrefix: "c",
		id: func(p *CommunityPost) *string { return &p.ID }}
	r.Notifications = &Collection[Notification]{store: st, key: CollectionNotifications, idPrefix: "n", prepend: true,
		id: func(n *Notification) *string { return &n.ID }}
	return r
}

// Today returns the current date as an ISO yyyy-mm-dd string, used to stamp
// jobs, community posts and notifications
func (r *Repository) Today() string {
	return r.now().UTC().Format("2006-01-02")
}

// Collection is a stored ordered sequence of records of one type, addressed
// by a unique string id. Jobs and notifications prepend on insert (newest
// first), the rest append.
type Collection[T any] struct {
	store    store.Store
	key      string
	idPrefix string
	prepend  bool
	id       func(*T) *string
}

// Key returns the store key backing the collection
func (c *Collection[T]) Key() string { return c.key }

// All returns the stored sequence, empty (not nil error) if the key is absent
func (c *Collection[T]) All() ([]T, error) {
	data, ok, err := c.store.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return recs, nil
}

// Insert adds the record, assigning a fresh unique id if it has none, and
// persists the updated sequence. Returns the record with its id filled in.
func (c *Collection[T]) Insert(rec T) (T, error) {
	recs, err := c.All()
	if err != nil {
		return rec, err
	}

	id := c.id(&rec)
	if *id == "" {
		*id = c.newID(recs)
	} else if c.contains(recs, *id) {
		return rec, fmt.Errorf("duplicate id %q in %s", *id, c.key)
	}

	if c.prepend {
		recs = append([]T{rec}, recs...)
	} else {
		recs = append(recs, rec)
	}
	if err := c.save(recs); err != nil {
		return rec, err
	}
	log.Printf("[DEBUG] inserted %s into %s", *id, c.key)
	return rec, nil
}

// FindByID returns the record with the matching id, absence via second result
func (c *Collection[T]) FindByID(id string) (T, bool, error) {
	var zero T
	recs, err := c.All()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range recs {
		if *c.id(&rec) == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Update applies the mutator to the record with the matching id and persists
// the sequence. Returns ErrNotFound without touching the store if the id is
// unknown. The record id itself can't be changed by the mutator.
func (c *Collection[T]) Update(id string, mutate func(*T)) error {
	recs, err := c.All()
	if err != nil {
		return err
	}
	for i := range recs {
		if *c.id(&recs[i]) != id {
			continue
		}
		mutate(&recs[i])
		*c.id(&recs[i]) = id // id is immutable
		return c.save(recs)
	}
	return fmt.Errorf("can't update %s in %s: %w", id, c.key, ErrNotFound)
}

// Delete removes the record with the matching id and persists the remainder.
// Deleting an unknown id is a no-op, reported via the first result.
func (c *Collection[T]) Delete(id string) (bool, error) {
	recs, err := c.All()
	if err != nil {
		return false, err
	}
	remaining := make([]T, 0, len(recs))
	removed := false
	for _, rec := range recs {
		if *c.id(&rec) == id {
			removed = true
			continue
		}
		remaining = append(remaining, rec)
	}
	if !removed {
		return false, nil
	}
	if err := c.save(remaining); err != nil {
		return false, err
	}
	log.Printf("[DEBUG] deleted %s from %s", id, c.key)
	return true, nil
}

func (c *Collection[T]) save(recs []T) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) contains(recs []T, id string) bool {
	for _, rec := range recs {
		if *c.id(&rec) == id {
			return true
		}
	}
	return false
}

// newID generates a prefixed short random id, retrying until it doesn't
// collide with anything already in the collection
func (c *Collection[T]) newID(recs []T) string {
	for {
		id := c.idPrefix + randomSuffix(7)
		if !c.contains(recs, id) {
			return id
		}
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is not expected to fail, fall back to a time-derived suffix
		log.Printf("[WARN] random source failed: %v", err)
		return fmt.Sprintf("%07d", time.Now().UnixNano()%10000000)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}
