package portal

import (
	"encoding/json"
	"fmt"

	log "github.com/go-pkgz/lgr"
)

// PostJob creates a job posting on behalf of the session. Only admins and
// employers may post; ownership and date are stamped here, never taken from
// the draft. The capability is checked even though the presentation layer
// gates the action too - the core doesn't trust its callers.
func (r *Repository) PostJob(ses *Session, draft Job) (Job, error) {
	if !ses.CanPostJob() {
		return Job{}, fmt.Errorf("post job: %w", ErrUnauthorized)
	}
	if err := requireField("title", draft.Title); err != nil {
		return Job{}, err
	}
	if err := requireField("district", draft.District); err != nil {
		return Job{}, err
	}

	draft.ID = "" // id is always generated, never client-supplied
	draft.PostedBy = ses.UserID
	if draft.Date == "" {
		draft.Date = r.Today()
	}

	job, err := r.Jobs.Insert(draft)
	if err != nil {
		return Job{}, err
	}
	if _, err := r.Notify("Job posted: " + job.Title); err != nil {
		log.Printf("[WARN] failed to record notification: %v", err)
	}
	return job, nil
}

// UpdateJob overwrites the editable fields of a job. Admins may edit any
// job, employers only their own.
func (r *Repository) UpdateJob(ses *Session, id string, changes Job) (Job, error) {
	job, found, err := r.Jobs.FindByID(id)
	if err != nil {
		return Job{}, err
	}
	if !found {
		return Job{}, fmt.Errorf("update job %s: %w", id, ErrNotFound)
	}
	if !ses.CanManageJob(job) {
		return Job{}, fmt.Errorf("update job %s: %w", id, ErrUnauthorized)
	}
	if err := requireField("title", changes.Title); err != nil {
		return Job{}, err
	}

	err = r.Jobs.Update(id, func(j *Job) {
		j.Title = changes.Title
		j.District = changes.District
		j.Taluka = changes.Taluka
		j.Village = changes.Village
		j.Type = changes.Type
		j.Salary = changes.Salary
		j.Desc = changes.Desc
	})
	if err != nil {
		return Job{}, err
	}
	if _, err := r.Notify("Job updated: " + changes.Title); err != nil {
		log.Printf("[WARN] failed to record notification: %v", err)
	}
	updated, _, err := r.Jobs.FindByID(id)
	return updated, err
}

// DeleteJob removes a job posting. Deleting an unknown id is a no-op for
// any caller; deleting an existing job demands the manage capability.
func (r *Repository) DeleteJob(ses *Session, id string) (bool, error) {
	job, found, err := r.Jobs.FindByID(id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if !ses.CanManageJob(job) {
		return false, fmt.Errorf("delete job %s: %w", id, ErrUnauthorized)
	}
	removed, err := r.Jobs.Delete(id)
	if err != nil {
		return false, err
	}
	if removed {
		if _, err := r.Notify("Job deleted: " + job.Title); err != nil {
			log.Printf("[WARN] failed to record notification: %v", err)
		}
	}
	return removed, nil
}

// Apply records a demo application for a job, jobseekers only. Nothing is
// delivered to the employer, the outcome is a notification record.
func (r *Repository) Apply(ses *Session, jobID, message string) error {
	job, found, err := r.Jobs.FindByID(jobID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("apply to job %s: %w", jobID, ErrNotFound)
	}
	if !ses.CanApply() {
		return fmt.Errorf("apply to job %s: %w", jobID, ErrUnauthorized)
	}

	text := "Application sent for " + job.Title
	if message != "" {
		text += ": " + message
	}
	if _, err := r.Notify(text); err != nil {
		return err
	}
	log.Printf("[INFO] application recorded for job %s by %s", jobID, ses.UserID)
	return nil
}

// SaveJob adds a job id to the saved-for-later list, once
func (r *Repository) SaveJob(id string) error {
	if _, found, err := r.Jobs.FindByID(id); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("save job %s: %w", id, ErrNotFound)
	}

	saved, err := r.SavedJobs()
	if err != nil {
		return err
	}
	for _, s := range saved {
		if s == id {
			return nil // already saved
		}
	}
	saved = append(saved, id)

	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to encode saved jobs: %w", err)
	}
	if err := r.store.Set(KeySavedJobs, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeySavedJobs, err)
	}
	return nil
}

// SavedJobs returns the saved-for-later job ids in save order
func (r *Repository) SavedJobs() ([]string, error) {
	data, ok, err := r.store.Get(KeySavedJobs)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved jobs: %w", err)
	}
	if !ok {
		return []string{}, nil
	}
	var saved []string
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved jobs: %w", err)
	}
	return saved, nil
}
