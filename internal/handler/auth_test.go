package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kainan-pos/api/internal/auth"
	"github.com/kainan-pos/api/internal/database"
	"github.com/kainan-pos/api/internal/enum"
	"github.com/kainan-pos/api/internal/handler"
)

const testSecret = "test-secret"

// --- Mock store ---

type mockUserStore struct {
	users map[string]database.TerminalUser
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]database.TerminalUser)}
}

func (m *mockUserStore) addUser(u database.TerminalUser) {
	m.users[u.Username] = u
}

func (m *mockUserStore) GetTerminalUserByUsername(_ context.Context, username string) (database.TerminalUser, error) {
	u, ok := m.users[username]
	if !ok {
		return database.TerminalUser{}, pgx.ErrNoRows
	}
	return u, nil
}

// --- Helpers ---

func hashPasscode(t *testing.T, passcode string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash passcode: %v", err)
	}
	return string(h)
}

func makeTestUser(t *testing.T) database.TerminalUser {
	t.Helper()
	return database.TerminalUser{
		ID:           uuid.New(),
		TerminalID:   uuid.New(),
		Username:     "cashier1",
		FullName:     "Test Cashier",
		PasscodeHash: hashPasscode(t, "123456"),
		Role:         enum.RoleCashier,
	}
}

func newAuthRouter(store handler.UserStore) http.Handler {
	r := chi.NewRouter()
	handler.NewAuthHandler(store, testSecret, zap.NewNop()).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Login tests ---

func TestLoginSuccess(t *testing.T) {
	store := newMockUserStore()
	user := makeTestUser(t)
	store.addUser(user)
	router := newAuthRouter(store)

	rr := postJSON(t, router, "/auth/login", map[string]string{
		"username": "cashier1",
		"passcode": "123456",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the response")
	}

	claims, err := auth.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.UserID != user.ID || claims.TerminalID != user.TerminalID || claims.Role != user.Role {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestLoginWrongPasscode(t *testing.T) {
	store := newMockUserStore()
	store.addUser(makeTestUser(t))
	router := newAuthRouter(store)

	rr := postJSON(t, router, "/auth/login", map[string]string{
		"username": "cashier1",
		"passcode": "999999",
	})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router := newAuthRouter(newMockUserStore())

	rr := postJSON(t, router, "/auth/login", map[string]string{
		"username": "ghost",
		"passcode": "123456",
	})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	router := newAuthRouter(newMockUserStore())

	rr := postJSON(t, router, "/auth/login", map[string]string{"username": "cashier1"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing passcode: expected 400, got %d", rr.Code)
	}

	rr = postJSON(t, router, "/auth/login", map[string]string{"passcode": "123456"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing username: expected 400, got %d", rr.Code)
	}
}

func TestLoginInvalidBody(t *testing.T) {
	router := newAuthRouter(newMockUserStore())

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}
