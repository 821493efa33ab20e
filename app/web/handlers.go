package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/ruraljobs/portal/app/auth"
	"github.com/ruraljobs/portal/app/portal"
	"github.com/ruraljobs/portal/app/search"
)

// jobRequest is the JSON body for posting and editing jobs
type jobRequest struct {
	Title    string `json:"title"`
	District string `json:"district"`
	Taluka   string `json:"taluka"`
	Village  string `json:"village"`
	Type     string `json:"type"`
	Salary   string `json:"salary"`
	Desc     string `json:"desc"`
}

func (j jobRequest) toJob() portal.Job {
	return portal.Job{Title: j.Title, District: j.District, Taluka: j.Taluka,
		Village: j.Village, Type: j.Type, Salary: j.Salary, Desc: j.Desc}
}

// jobsResponse is the JSON response for job listing and search
type jobsResponse struct {
	Jobs  []portal.Job `json:"jobs"`
	Count int          `json:"count"`
}

// handleJobsList returns jobs filtered by the query parameters, all of them
// optional: q, district, taluka, village, type
func (s *Server) handleJobsList(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.repo.Jobs.All()
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	criteria := search.Criteria{
		Text:     q.Get("q"),
		District: q.Get("district"),
		Taluka:   q.Get("taluka"),
		Village:  q.Get("village"),
		Type:     q.Get("type"),
	}
	filtered, count := search.Jobs(jobs, criteria)
	s.writeJSON(w, http.StatusOK, jobsResponse{Jobs: filtered, Count: count})
}

// handleJobGet returns a single job by id
func (s *Server) handleJobGet(w http.ResponseWriter, r *http.Request) {
	job, found, err := s.repo.Jobs.FindByID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		s.writeJSONError(w, http.StatusNotFound, "job not found")
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

// handleJobPost creates a job posting for the current session
func (s *Server) handleJobPost(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	job, err := s.repo.PostJob(s.sessionFromRequest(r), req.toJob())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, job)
}

// handleJobUpdate overwrites the editable fields of a job
func (s *Server) handleJobUpdate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	job, err := s.repo.UpdateJob(s.sessionFromRequest(r), r.PathValue("id"), req.toJob())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

// handleJobDelete removes a job posting
func (s *Server) handleJobDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := s.repo.DeleteJob(s.sessionFromRequest(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}

// handleJobApply records a demo application for the current session
func (s *Server) handleJobApply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := s.repo.Apply(s.sessionFromRequest(r), r.PathValue("id"), req.Message); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "application sent"})
}

// handleJobSave adds a job to the saved-for-later list
func (s *Server) handleJobSave(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.SaveJob(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleSavedJobs returns the saved job ids
func (s *Server) handleSavedJobs(w http.ResponseWriter, _ *http.Request) {
	saved, err := s.repo.SavedJobs()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"saved": saved})
}

// handleTrainings returns the training catalog
func (s *Server) handleTrainings(w http.ResponseWriter, _ *http.Request) {
	trainings, err := s.repo.Trainings.All()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trainings)
}

// handleLocations returns districts with their talukas
func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	type district struct {
		Name    string   `json:"name"`
		Talukas []string `json:"talukas"`
	}
	districts := portal.Districts()
	res := make([]district, 0, len(districts))
	for _, d := range districts {
		res = append(res, district{Name: d, Talukas: portal.Talukas(d)})
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleCommunityFeed returns community posts newest first
func (s *Server) handleCommunityFeed(w http.ResponseWriter, _ *http.Request) {
	posts, err := s.repo.CommunityFeed()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, posts)
}

// handleCommunityPost appends an update to the community feed
func (s *Server) handleCommunityPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := s.repo.AddCommunityPost(req.Author, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, post)
}

// handleNotifications returns the notification feed, newest first
func (s *Server) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	notes, err := s.repo.Notifications.All()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, notes)
}

// handleSettings returns the stored preferences
func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	settings, err := s.repo.Settings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// handleLanguage switches the UI language
func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lang string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.repo.SetLanguage(req.Lang); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"lang": req.Lang})
}

// statusResponse is the JSON response for /status
type statusResponse struct {
	Version       string    `json:"version"`
	Jobs          int       `json:"jobs"`
	Users         int       `json:"users"`
	Trainings     int       `json:"trainings"`
	Community     int       `json:"community"`
	Notifications int       `json:"notifications"`
	Timestamp     time.Time `json:"timestamp"`
}

// handleStatus returns collection counts, designed for CLI/jq consumption
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{Version: s.version, Timestamp: time.Now()}

	count := func(n *int, loader func() (int, error)) bool {
		c, err := loader()
		if err != nil {
			s.writeError(w, err)
			return false
		}
		*n = c
		return true
	}
	jobs := func() (int, error) { l, err := s.repo.Jobs.All(); return len(l), err }
	users := func() (int, error) { l, err := s.repo.Users.All(); return len(l), err }
	trainings := func() (int, error) { l, err := s.repo.Trainings.All(); return len(l), err }
	community := func() (int, error) { l, err := s.repo.Community.All(); return len(l), err }
	notes := func() (int, error) { l, err := s.repo.Notifications.All(); return len(l), err }

	if !count(&resp.Jobs, jobs) || !count(&resp.Users, users) || !count(&resp.Trainings, trainings) ||
		!count(&resp.Community, community) || !count(&resp.Notifications, notes) {
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// writeError maps core errors to HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErr *portal.ValidationError
	switch {
	case errors.As(err, &validationErr):
		s.writeJSONError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, portal.ErrNotFound):
		s.writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, portal.ErrUnauthorized):
		s.writeJSONError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrDuplicateEmail):
		s.writeJSONError(w, http.StatusConflict, "email already registered")
	default:
		log.Printf("[ERROR] request failed: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
