package portal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruraljobs/portal/app/store"
)

func TestCollection_AllOnAbsentKey(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	assert.Empty(t, jobs, "absent collection reads as empty, not as error")
}

func TestCollection_InsertAssignsPrefixedIDs(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	job, err := repo.Jobs.Insert(Job{Title: "Farm Assistant"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(job.ID, "j"), "job id %q must carry the j prefix", job.ID)
	assert.Len(t, job.ID, 8)

	user, err := repo.Users.Insert(User{Name: "Seema"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "u"))

	post, err := repo.Community.Insert(CommunityPost{Author: "Seema", Content: "hello"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(post.ID, "c"))

	note, err := repo.Notifications.Insert(Notification{Text: "hi"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(note.ID, "n"))
}

func TestCollection_InsertIDsUnique(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		job, err := repo.Jobs.Insert(Job{Title: "job"})
		require.NoError(t, err)
		assert.False(t, seen[job.ID], "id %q issued twice", job.ID)
		seen[job.ID] = true
	}
}

func TestCollection_InsertRejectsDuplicateID(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	_, err := repo.Jobs.Insert(Job{ID: "j1", Title: "first"})
	require.NoError(t, err)

	_, err = repo.Jobs.Insert(Job{ID: "j1", Title: "second"})
	assert.Error(t, err)

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "failed insert must not change the collection")
}

func TestCollection_RoundTrip(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	inserted, err := repo.Jobs.Insert(Job{Title: "Farm Assistant", District: "Pune", Taluka: "Baramati",
		Village: "Karjat", Type: "Daily Wage", Salary: "₹250/day", Desc: "basic farm work",
		PostedBy: "u_emp", Date: "2025-01-10"})
	require.NoError(t, err)

	found, ok, err := repo.Jobs.FindByID(inserted.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inserted, found)
}

func TestCollection_JobsPrependCommunityAppends(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	first, err := repo.Jobs.Insert(Job{Title: "first"})
	require.NoError(t, err)
	second, err := repo.Jobs.Insert(Job{Title: "second"})
	require.NoError(t, err)

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID, "jobs insert newest first")
	assert.Equal(t, first.ID, jobs[1].ID)

	p1, err := repo.Community.Insert(CommunityPost{Author: "a", Content: "one"})
	require.NoError(t, err)
	p2, err := repo.Community.Insert(CommunityPost{Author: "b", Content: "two"})
	require.NoError(t, err)

	posts, err := repo.Community.All()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID, "community posts append in arrival order")
	assert.Equal(t, p2.ID, posts[1].ID)
}

func TestCollection_Update(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	job, err := repo.Jobs.Insert(Job{Title: "old title", District: "Pune"})
	require.NoError(t, err)

	err = repo.Jobs.Update(job.ID, func(j *Job) {
		j.Title = "new title"
		j.ID = "hijacked" // must be ignored
	})
	require.NoError(t, err)

	updated, ok, err := repo.Jobs.FindByID(job.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "Pune", updated.District)
	assert.Equal(t, job.ID, updated.ID)
}

func TestCollection_UpdateNotFound(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	job, err := repo.Jobs.Insert(Job{Title: "only one"})
	require.NoError(t, err)

	err = repo.Jobs.Update("nonexistent", func(j *Job) { j.Title = "changed" })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.Title, jobs[0].Title, "failed update must leave the collection unchanged")
}

func TestCollection_Delete(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	job, err := repo.Jobs.Insert(Job{Title: "to remove"})
	require.NoError(t, err)
	keep, err := repo.Jobs.Insert(Job{Title: "to keep"})
	require.NoError(t, err)

	removed, err := repo.Jobs.Delete(job.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, keep.ID, jobs[0].ID)
}

func TestCollection_DeleteAbsentIsNoop(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	_, err := repo.Jobs.Insert(Job{Title: "survivor"})
	require.NoError(t, err)

	removed, err := repo.Jobs.Delete("nonexistent")
	require.NoError(t, err, "deleting unknown id is not an error")
	assert.False(t, removed)

	jobs, err := repo.Jobs.All()
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestCollection_FindByIDAbsent(t *testing.T) {
	repo := NewRepository(store.NewMemory())

	_, ok, err := repo.Jobs.FindByID("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Today(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, repo.Today())
}

func TestParseRole(t *testing.T) {
	for _, good := range []string{"admin", "employer", "jobseeker"} {
		role, err := ParseRole(good)
		require.NoError(t, err)
		assert.Equal(t, Role(good), role)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}
