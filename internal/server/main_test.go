package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/models"
	"chirp/internal/token"
	"chirp/internal/uploader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testApp bundles a server wired to an in-memory database and a fake
// image host.
type testApp struct {
	app *fiber.App
	srv *Server
	db  *gorm.DB
	up  *uploader.Fake
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	cfg := &config.Config{
		Port:      "8000",
		JWTSecret: strings.Repeat("s", 32),
		Env:       "test",
	}
	up := uploader.NewFake()
	srv := NewServerWithDeps(cfg, db, nil, up)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testApp{app: app, srv: srv, db: db, up: up}
}

// request performs an HTTP request against the app, JSON-encoding body when
// present and attaching the identity cookie when non-empty.
func (ta *testApp) request(t *testing.T, method, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: cookie})
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// signup registers a user and returns their identity cookie value.
func (ta *testApp) signup(t *testing.T, username, password string) string {
	t.Helper()

	resp := ta.request(t, fiber.MethodPost, "/api/signup", map[string]string{
		"username": username,
		"fullName": "User " + username,
		"email":    username + "@example.com",
		"password": password,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == token.CookieName {
			return c.Value
		}
	}
	t.Fatal("signup response did not set the identity cookie")
	return ""
}

// userID looks up a user's ID by username directly in the database.
func (ta *testApp) userID(t *testing.T, username string) uint {
	t.Helper()

	var user models.User
	require.NoError(t, ta.db.Where("username = ?", username).First(&user).Error)
	return user.ID
}

func followPath(id uint) string {
	return fmt.Sprintf("/api/users/follow/%d", id)
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var m map[string]any
	decodeJSON(t, resp, &m)
	return m
}
