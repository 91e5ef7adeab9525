package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CotLens/internal/auth"
	models "CotLens/internal/domain/models"
	"CotLens/internal/service/ratelimit"
)

type memUserStore struct {
	users map[string]*models.User
	codes map[string]*models.VerificationCode
	views map[string]*models.ViewState
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users: make(map[string]*models.User),
		codes: make(map[string]*models.VerificationCode),
		views: make(map[string]*models.ViewState),
	}
}

func (m *memUserStore) CreateUser(_ context.Context, u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) UserByID(_ context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *memUserStore) MarkPhoneVerified(_ context.Context, id string) error {
	if u, ok := m.users[id]; ok {
		u.PhoneVerified = true
	}
	return nil
}

func (m *memUserStore) SaveCode(_ context.Context, c *models.VerificationCode) error {
	m.codes[c.UserID] = c
	return nil
}

func (m *memUserStore) CodeByUser(_ context.Context, userID string) (*models.VerificationCode, error) {
	return m.codes[userID], nil
}

func (m *memUserStore) DeleteCode(_ context.Context, userID string) error {
	delete(m.codes, userID)
	return nil
}

func (m *memUserStore) View(_ context.Context, userID string) (*models.ViewState, error) {
	return m.views[userID], nil
}

func (m *memUserStore) SaveView(_ context.Context, userID string, v *models.ViewState) error {
	copied := *v
	m.views[userID] = &copied
	return nil
}

type recordingSender struct {
	code string
}

func (r *recordingSender) SendCode(_ context.Context, _, code string) error {
	r.code = code
	return nil
}

func newAuthServer(t *testing.T) (*echo.Echo, *memUserStore, *recordingSender) {
	t.Helper()
	log := testLogger(t)
	store := newMemUserStore()
	sender := &recordingSender{}
	tokens := auth.NewJWTService("test-secret", time.Hour)
	svc := auth.NewService(store, sender, tokens, ratelimit.New(), log,
		auth.WithCodeGenerator(func() (string, error) { return "123456", nil }))
	h := NewAuthEchoHandler(log, svc, tokens)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, store, sender
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const signupBody = `{"email":"alice@example.com","password":"correct horse","phone":"+15550001111"}`

func TestSignupEndpoint(t *testing.T) {
	e, store, _ := newAuthServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/signup", signupBody, "")
	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusCreated, env.Status)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "alice@example.com", data["email"])
	assert.NotContains(t, data, "password_hash", "hash must never leave the API")
	assert.Len(t, store.users, 1)

	// Same email again fails.
	env = decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/signup", signupBody, ""))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestSignupValidation(t *testing.T) {
	e, _, _ := newAuthServer(t)

	cases := []string{
		`{"email":"not-an-email","password":"correct horse","phone":"+15550001111"}`,
		`{"email":"alice@example.com","password":"short","phone":"+15550001111"}`,
		`{"email":"alice@example.com","password":"correct horse","phone":"555"}`,
	}
	for _, body := range cases {
		env := decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/signup", body, ""))
		assert.Equal(t, http.StatusBadRequest, env.Status, body)
	}
}

func TestLoginEndpoint(t *testing.T) {
	e, _, _ := newAuthServer(t)
	doJSON(e, http.MethodPost, "/api/auth/signup", signupBody, "")

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"correct horse"}`, "")
	env := decodeEnvelope(t, rec)
	require.Equal(t, http.StatusOK, env.Status)

	data := env.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	env = decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong horse"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, env.Status)
}

func TestVerificationFlow(t *testing.T) {
	e, store, sender := newAuthServer(t)
	doJSON(e, http.MethodPost, "/api/auth/signup", signupBody, "")

	loginEnv := decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"correct horse"}`, ""))
	token := loginEnv.Data.(map[string]interface{})["token"].(string)

	// No token, no code.
	env := decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/verify/send", "", ""))
	assert.Equal(t, http.StatusUnauthorized, env.Status)

	env = decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/verify/send", "", token))
	require.Equal(t, http.StatusOK, env.Status)
	require.Equal(t, "123456", sender.code)

	env = decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/verify/confirm",
		`{"code":"`+sender.code+`"}`, token))
	require.Equal(t, http.StatusOK, env.Status)

	for _, u := range store.users {
		assert.True(t, u.PhoneVerified)
	}
}

func TestVerifyConfirmRejectsWrongCode(t *testing.T) {
	e, _, _ := newAuthServer(t)
	doJSON(e, http.MethodPost, "/api/auth/signup", signupBody, "")

	loginEnv := decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"correct horse"}`, ""))
	token := loginEnv.Data.(map[string]interface{})["token"].(string)

	doJSON(e, http.MethodPost, "/api/auth/verify/send", "", token)
	env := decodeEnvelope(t, doJSON(e, http.MethodPost, "/api/auth/verify/confirm",
		`{"code":"000000"}`, token))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}
