package web

import (
	"encoding/json"
	"net/http"

	"github.com/ruraljobs/portal/app/portal"
)

// loginRequest is the JSON body for /auth/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// signupRequest is the JSON body for /auth/signup
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleLogin authenticates and binds a session cookie
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := portal.ParseRole(req.Role)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ses, err := s.auth.Login(req.Email, req.Password, role)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setAuthCookie(w, r, s.bindSession(ses))
	s.writeJSON(w, http.StatusOK, ses)
}

// handleSignup registers a new user and binds a session cookie
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ses, err := s.auth.Signup(req.Name, req.Email, req.Password, portal.Role(req.Role))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setAuthCookie(w, r, s.bindSession(ses))
	s.writeJSON(w, http.StatusCreated, ses)
}

// handleLogout clears the session and the cookie, safe for anonymous callers
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("portal-auth"); err == nil {
		s.dropSession(cookie.Value)
	}
	if err := s.auth.Logout(); err != nil {
		s.writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "portal-auth",
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete cookie
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the session bound to the request, 401 for anonymous
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ses := s.sessionFromRequest(r)
	if ses == nil {
		s.writeJSONError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	s.writeJSON(w, http.StatusOK, ses)
}

// setAuthCookie binds the session token to the browser
func (s *Server) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "portal-auth",
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.loginTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
	})
}
