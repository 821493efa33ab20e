package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruraljobs/portal/app/auth"
	"github.com/ruraljobs/portal/app/portal"
	"github.com/ruraljobs/portal/app/store"
)

func jsonBody(s string) io.Reader { return bytes.NewBufferString(s) }

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestServer_Login(t *testing.T) {
	t.Run("demo jobseeker gets a session cookie", func(t *testing.T) {
		_, ts := prepServer(t)

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/auth/login",
			jsonBody(`{"email":"seema@portal","password":"js123","role":"jobseeker"}`))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ses portal.Session
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ses))
		assert.Equal(t, "u_js", ses.UserID)

		cookie := findCookie(resp.Cookies(), "portal-auth")
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		// the cookie resolves on /auth/me
		code, body := doRequest(t, http.MethodGet, ts.URL+"/api/v1/auth/me", "", cookie)
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(body, &ses))
		assert.Equal(t, "Seema", ses.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, ts := prepServer(t)
		code, _ := doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/login",
			`{"email":"seema@portal","password":"wrong","role":"jobseeker"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, ts := prepServer(t)
		code, _ := doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/login",
			`{"email":"seema@portal","password":"js123","role":"wizard"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("broken body", func(t *testing.T) {
		_, ts := prepServer(t)
		code, _ := doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/login", `{broken`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestServer_Signup(t *testing.T) {
	t.Run("new user", func(t *testing.T) {
		_, ts := prepServer(t)

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/auth/signup",
			jsonBody(`{"name":"Ravi","email":"ravi@portal","password":"secret","role":"jobseeker"}`))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var ses portal.Session
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ses))
		assert.Equal(t, "Ravi", ses.Name)
		assert.NotNil(t, findCookie(resp.Cookies(), "portal-auth"))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, ts := prepServer(t)
		code, _ := doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/signup",
			`{"name":"Imposter","email":"seema@portal","password":"x","role":"jobseeker"}`)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, ts := prepServer(t)
		code, _ := doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/signup",
			`{"name":"","email":"a@portal","password":"x","role":"jobseeker"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestServer_Logout(t *testing.T) {
	srv, ts := prepServer(t)
	cookie := authCookie(srv, portal.RoleJobseeker, "u_js")

	code, _ := doRequest(t, http.MethodGet, ts.URL+"/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, code)

	// the token no longer resolves
	code, _ = doRequest(t, http.MethodGet, ts.URL+"/api/v1/auth/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, code)

	// logging out anonymously stays quiet
	code, _ = doRequest(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestServer_MeAnonymous(t *testing.T) {
	_, ts := prepServer(t)
	code, _ := doRequest(t, http.MethodGet, ts.URL+"/api/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServer_SessionExpiry(t *testing.T) {
	repo := portal.NewRepository(store.NewMemory())
	require.NoError(t, repo.EnsureInitialized())
	srv, err := New(Config{Repo: repo, Auth: auth.NewService(repo), LoginTTL: time.Nanosecond})
	require.NoError(t, err)

	token := srv.bindSession(&portal.Session{UserID: "u_js", Role: portal.RoleJobseeker})
	time.Sleep(time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "portal-auth", Value: token})
	assert.Nil(t, srv.sessionFromRequest(req), "expired token must not resolve")
}
