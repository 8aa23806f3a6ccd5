package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andhrawala/internal/config"
	"andhrawala/internal/database"
	"andhrawala/internal/middlewares"
	"andhrawala/internal/repositories"
	"andhrawala/internal/services"
)

// nullEmailService satisfies the email dependency without an SMTP server.
type nullEmailService struct{}

func (nullEmailService) SendEmail(to, subject, msg string) error { return nil }

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	mediaDir := t.TempDir()
	cfg := &config.Config{
		UsersFile:      filepath.Join(t.TempDir(), "users.json"),
		MediaDir:       mediaDir,
		MediaExts:      []string{".mp4", ".mkv", ".webm"},
		OTPTTL:         5 * time.Minute,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	db := database.New(cfg.UsersFile)
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository()

	s := &Server{
		cfg:          cfg,
		db:           db,
		sessionRepo:  sessionRepo,
		authService:  services.NewAuthService(userRepo, sessionRepo),
		otpService:   services.NewOTPService(repositories.NewOTPRepository(), nullEmailService{}, cfg.OTPTTL),
		mediaService: services.NewMediaService(cfg.MediaDir, cfg.MediaExts),
		rateLimiter:  middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts, mediaDir
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signupAndLogin(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, ts.URL+"/api/signup", map[string]string{
		"contact":  "alice@example.com",
		"username": "alice",
		"password": "s3cret",
		"dob":      "1990-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/login", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.Len(t, token, 48)
	return token
}

func TestSignupLoginFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	token := signupAndLogin(t, ts)
	require.NotEmpty(t, token)

	// Duplicate signup is rejected.
	resp := postJSON(t, ts.URL+"/api/signup", map[string]string{
		"contact":  "alice@example.com",
		"username": "alice2",
		"password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Wrong password is rejected.
	resp = postJSON(t, ts.URL+"/api/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMoviesRequireAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/movies")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/video/film.mp4")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMovieListingAndStreaming(t *testing.T) {
	ts, mediaDir := newTestServer(t)
	content := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "film.mp4"), content, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "notes.txt"), []byte("x"), 0644))

	token := signupAndLogin(t, ts)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/movies", nil)
	req.Header.Set("x-auth-token", token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	movies := body["movies"].([]any)
	require.Len(t, movies, 1)
	movie := movies[0].(map[string]any)
	assert.Equal(t, "film.mp4", movie["name"])
	assert.Equal(t, "/video/film.mp4", movie["url"])

	// Stream a byte range using the query-param token transport.
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/video/film.mp4?token="+token, nil)
	req.Header.Set("Range", "bytes=4-7")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 4-7/16", resp.Header.Get("Content-Range"))

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("4567"), got)
}

func TestOTPFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	// Invalid contact.
	resp := postJSON(t, ts.URL+"/api/send-otp", map[string]string{"contact": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Valid email contact; the null email service always delivers.
	resp = postJSON(t, ts.URL+"/api/send-otp", map[string]string{"contact": "alice@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Verifying with the wrong code fails without consuming the entry.
	resp = postJSON(t, ts.URL+"/api/verify-otp", map[string]string{
		"contact": "alice@example.com",
		"otp":     "000000",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Verifying without any pending code fails.
	resp = postJSON(t, ts.URL+"/api/verify-otp", map[string]string{
		"contact": "bob@example.com",
		"otp":     "123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHelloAndHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "It's healthy", body["message"])
}
