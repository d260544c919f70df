package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kapipost/internal/cache"
	"kapipost/internal/config"
	"kapipost/internal/database"
	"kapipost/internal/middleware"
	"kapipost/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	app   *fiber.App
	srv   *Server
	db    *gorm.DB
	redis *miniredis.Miniredis
}

// setupTestServer builds a full stack against an in-memory database and a
// miniredis instance.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		JWTSecret:  "test-secret-key-for-tests-only",
		Env:        "test",
		MediaDir:   t.TempDir(),
		AdminUsers: "operator",
	}
	middleware.InitMiddleware(cfg)

	srv, err := NewServerWithDeps(cfg, db, client)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{app: app, srv: srv, db: db, redis: mr}
}

// signupUser creates a user directly and returns it with a valid token.
func (ts *testServer) signupUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, ts.db.Create(user).Error)

	token, err := ts.srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func (ts *testServer) createPost(t *testing.T, author *models.User, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, CreatedAt: createdAt}
	require.NoError(t, ts.db.Create(post).Error)
	return post
}

// request performs an HTTP request against the test app. A non-empty token
// is sent as a bearer token; a non-nil body is sent as JSON.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(readBody(t, resp), dest))
}
