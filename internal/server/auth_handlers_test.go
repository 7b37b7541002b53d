package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelist/internal/config"
	"reelist/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{Env: "test", SessionSecret: "unit-test-session-secret-0123456789"},
		userRepo: mockRepo,
	}

	app.Post("/register", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Alice",
				"email":    "alice@example.com",
				"password": "password123",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusFound,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"name":     "Alice",
				"email":    "exists@example.com",
				"password": "password123",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"name":     "Alice",
				"email":    "not-an-email",
				"password": "password123",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"name":     "Alice",
				"email":    "alice2@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegister_SetsSessionCookie(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := &Server{
		config:   &config.Config{Env: "test", SessionSecret: "unit-test-session-secret-0123456789"},
		userRepo: mockRepo,
	}
	app.Post("/register", s.Register)

	body, _ := json.Marshal(map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var found bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			found = true
			assert.True(t, cookie.HttpOnly)
			assert.NotEmpty(t, cookie.Value)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: 1, Email: "alice@example.com", Password: string(hash)}, nil)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	s := &Server{
		config:   &config.Config{Env: "test", SessionSecret: "unit-test-session-secret-0123456789"},
		userRepo: mockRepo,
	}
	app.Post("/login", s.Login)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           map[string]string{"email": "alice@example.com", "password": "password123"},
			expectedStatus: http.StatusFound,
		},
		{
			name:           "Wrong Password",
			body:           map[string]string{"email": "alice@example.com", "password": "wrongpass1"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Email",
			body:           map[string]string{"email": "nobody@example.com", "password": "password123"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin_FailureMessageDoesNotRevealWhichCredential(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: 1, Email: "alice@example.com", Password: string(hash)}, nil)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	s := &Server{
		config:   &config.Config{Env: "test", SessionSecret: "unit-test-session-secret-0123456789"},
		userRepo: mockRepo,
	}
	app.Post("/login", s.Login)

	readError := func(body map[string]string) string {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var payload models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		return payload.Error
	}

	unknownEmail := readError(map[string]string{"email": "nobody@example.com", "password": "password123"})
	wrongPassword := readError(map[string]string{"email": "alice@example.com", "password": "wrongpass1"})
	assert.Equal(t, unknownEmail, wrongPassword)
}

func TestSessionRequired(t *testing.T) {
	app, s := newTestServer(t, &stubCatalog{})
	user := createTestUser(t, s, "alice@example.com")

	t.Run("No Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/create_list", bytes.NewReader([]byte(`{"name":"Favorites"}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/create_list", bytes.NewReader([]byte(`{"name":"Favorites"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/create_list", bytes.NewReader([]byte(`{"name":"Favorites"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sessionFor(t, s, user.ID))

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})
}

func TestLogout_RevokesSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	app, s := newTestServer(t, &stubCatalog{})
	s.redis = rdb
	user := createTestUser(t, s, "alice@example.com")
	cookie := sessionFor(t, s, user.ID)

	// Session works before logout.
	req := httptest.NewRequest(http.MethodPost, "/create_list", bytes.NewReader([]byte(`{"name":"Favorites"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// Logout blacklists the token.
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// Replaying the old token must now fail.
	req = httptest.NewRequest(http.MethodPost, "/create_list", bytes.NewReader([]byte(`{"name":"Another"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionToken_Claims(t *testing.T) {
	s := &Server{
		config: &config.Config{Env: "test", SessionSecret: "unit-test-session-secret-0123456789"},
	}

	token, err := s.generateSessionToken(42)
	require.NoError(t, err)

	claims, err := s.parseSessionToken(token)
	require.NoError(t, err)

	userID, err := userIDFromClaims(claims)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sessionTTL), exp.Time, time.Minute)
}

func TestParseSessionToken_RejectsWrongSecret(t *testing.T) {
	issuer := &Server{config: &config.Config{SessionSecret: "unit-test-session-secret-0123456789"}}
	verifier := &Server{config: &config.Config{SessionSecret: "a-completely-different-secret-value"}}

	token, err := issuer.generateSessionToken(1)
	require.NoError(t, err)

	_, err = verifier.parseSessionToken(token)
	assert.Error(t, err)
}
