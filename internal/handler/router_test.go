package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/auth"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/limiter"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository/sqlite"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/service"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/storage"
)

const (
	testJWTSecret     = "router-test-secret-0123456789abcdef"
	testAdminUsername = "admin"
	testAdminPassword = "admin-test-password"
)

// testServer bundles the API under test with the codec needed to inspect
// issued tokens.
type testServer struct {
	*httptest.Server
	codec *auth.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(":memory:"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	userRepo := sqlite.NewUserRepository(db)
	bookRepo := sqlite.NewBookRepository(db)
	bookmarkRepo := sqlite.NewBookmarkRepository(db)

	userService := service.NewUserService(userRepo, bcrypt.MinCost, logger)
	bookService := service.NewBookService(bookRepo, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, logger)
	statsService := service.NewStatsService(userRepo, bookRepo, bookmarkRepo, nil, logger)

	backend, err := storage.NewFilesystemBackend(t.TempDir(), logger)
	require.NoError(t, err)

	codec := auth.NewCodec(testJWTSecret, time.Hour)
	adminCreds := auth.AdminCredentials{
		Username: testAdminUsername,
		Password: testAdminPassword,
	}

	router := NewRouter(RouterConfig{
		AuthHandler: NewAuthHandler(AuthHandlerConfig{
			UserService: userService,
			Codec:       codec,
			AdminCreds:  adminCreds,
			Limiter:     limiter.NewNoOpLimiter(),
			Logger:      logger,
		}),
		UserHandler:     NewUserHandler(userService, logger),
		BookHandler:     NewBookHandler(bookService, logger),
		BookmarkHandler: NewBookmarkHandler(bookmarkService, logger),
		AdminHandler:    NewAdminHandler(statsService, userService, logger),
		UploadHandler:   NewUploadHandler(backend, 1<<20, logger),
		AuthMiddleware:  auth.Middleware(codec),
		RequestTimeout:  10 * time.Second,
		DB:              db,
		Logger:          logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, codec: codec}
}

// do sends a JSON request, optionally with a bearer token, and decodes the
// JSON response into out when out is non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// registerAndLogin creates a user and returns its token and id.
func (s *testServer) registerAndLogin(t *testing.T, username, email, password string) (string, int64) {
	t.Helper()

	status := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	status = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	return login.Token, login.User.ID
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	var registered struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	status := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw1",
	}, &registered)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "alice", registered.Username)
	require.Equal(t, "a@x.com", registered.Email)
	require.NotZero(t, registered.ID)

	// Registering again with the same email is a conflict.
	status = srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "a@x.com",
		"password": "pw1",
	}, nil)
	require.Equal(t, http.StatusConflict, status)

	// Wrong password is rejected without issuing a token.
	var failed struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	status = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, &failed)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Empty(t, failed.Token)

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID           int64  `json:"id"`
			Username     string `json:"username"`
			PasswordHash string `json:"password_hash"`
		} `json:"user"`
	}
	status = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, registered.ID, login.User.ID)
	require.Empty(t, login.User.PasswordHash)

	claims, err := srv.codec.Decode(login.Token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, auth.RoleUser, claims.Role)
}

func TestAPI_BookOwnership(t *testing.T) {
	srv := newTestServer(t)

	aliceToken, aliceID := srv.registerAndLogin(t, "alice", "a@x.com", "pw1")
	bobToken, _ := srv.registerAndLogin(t, "bob", "b@x.com", "pw2")

	// Creating without a token is rejected.
	status := srv.do(t, http.MethodPost, "/api/books", "", map[string]any{
		"title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// The owner comes from the token, not the request body.
	var created struct {
		ID         string `json:"id"`
		UploadedBy int64  `json:"uploadedBy"`
		IsNew      bool   `json:"isNew"`
	}
	status = srv.do(t, http.MethodPost, "/api/books", aliceToken, map[string]any{
		"title":      "Dune",
		"author":     "Frank Herbert",
		"genre":      "Sci-Fi",
		"rating":     4.5,
		"uploadedBy": 9999,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, aliceID, created.UploadedBy)
	require.True(t, created.IsNew)

	// Reads are public.
	status = srv.do(t, http.MethodGet, "/api/books/"+created.ID, "", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// Bob cannot update or delete Alice's book.
	status = srv.do(t, http.MethodPut, "/api/books/"+created.ID, bobToken, map[string]any{
		"title": "Hijacked",
	}, nil)
	require.Equal(t, http.StatusForbidden, status)

	status = srv.do(t, http.MethodDelete, "/api/books/"+created.ID, bobToken, nil, nil)
	require.Equal(t, http.StatusForbidden, status)

	// A missing book is not found even for a non-owner, never forbidden.
	status = srv.do(t, http.MethodPut, "/api/books/no-such-id", bobToken, map[string]any{
		"title": "Ghost",
	}, nil)
	require.Equal(t, http.StatusNotFound, status)

	// The owner can.
	var updated struct {
		Title string `json:"title"`
		IsNew bool   `json:"isNew"`
	}
	status = srv.do(t, http.MethodPut, "/api/books/"+created.ID, aliceToken, map[string]any{
		"title": "Dune Messiah",
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Dune Messiah", updated.Title)
	require.False(t, updated.IsNew)

	status = srv.do(t, http.MethodDelete, "/api/books/"+created.ID, aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = srv.do(t, http.MethodGet, "/api/books/"+created.ID, "", nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestAPI_BookmarksOwnerOnly(t *testing.T) {
	srv := newTestServer(t)

	aliceToken, _ := srv.registerAndLogin(t, "alice", "a@x.com", "pw1")
	bobToken, _ := srv.registerAndLogin(t, "bob", "b@x.com", "pw2")

	var created struct {
		ID  string `json:"id"`
		URL string `json:"urlLink"`
	}
	status := srv.do(t, http.MethodPost, "/api/urls", aliceToken, map[string]string{
		"urlLink":  "https://example.com/article",
		"category": "reading",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "https://example.com/article", created.URL)

	// Bookmarks are private, even for reads.
	status = srv.do(t, http.MethodGet, "/api/urls/"+created.ID, bobToken, nil, nil)
	require.Equal(t, http.StatusForbidden, status)

	status = srv.do(t, http.MethodGet, "/api/urls/"+created.ID, aliceToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestAPI_AdminLogin(t *testing.T) {
	srv := newTestServer(t)

	// Wrong credentials never yield an admin token.
	var failed struct {
		Token string `json:"token"`
	}
	status := srv.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": testAdminUsername,
		"password": "wrong",
	}, &failed)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Empty(t, failed.Token)

	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	status = srv.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "admin", login.Role)

	claims, err := srv.codec.Decode(login.Token)
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, claims.Role)
	require.Equal(t, auth.AdminUserID, claims.UserID)
}

func TestAPI_AdminRoutesRequireAdminRole(t *testing.T) {
	srv := newTestServer(t)

	userToken, _ := srv.registerAndLogin(t, "alice", "a@x.com", "pw1")

	// A regular user token does not open admin routes.
	status := srv.do(t, http.MethodGet, "/api/admin/stats", userToken, nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	var adminLogin struct {
		Token string `json:"token"`
	}
	status = srv.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, &adminLogin)
	require.Equal(t, http.StatusOK, status)

	var stats struct {
		TotalUsers int64 `json:"totalUsers"`
	}
	status = srv.do(t, http.MethodGet, "/api/admin/stats", adminLogin.Token, nil, &stats)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), stats.TotalUsers)

	var users struct {
		Users      []json.RawMessage `json:"users"`
		TotalCount int64             `json:"totalCount"`
	}
	status = srv.do(t, http.MethodGet, "/api/admin/users", adminLogin.Token, nil, &users)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), users.TotalCount)
	require.Len(t, users.Users, 1)
}

func TestAPI_AdminDeactivateBlocksLogin(t *testing.T) {
	srv := newTestServer(t)

	_, aliceID := srv.registerAndLogin(t, "alice", "a@x.com", "pw1")

	var adminLogin struct {
		Token string `json:"token"`
	}
	status := srv.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, &adminLogin)
	require.Equal(t, http.StatusOK, status)

	path := fmt.Sprintf("/api/admin/users/%d/active", aliceID)
	status = srv.do(t, http.MethodPut, path, adminLogin.Token, map[string]bool{
		"isActive": false,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status = srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	var health struct {
		Status string `json:"status"`
	}
	status := srv.do(t, http.MethodGet, "/healthz", "", nil, &health)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", health.Status)
}
