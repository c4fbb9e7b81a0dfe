package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice",
		"password": "hunter22",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created successfully", decodeBody(t, w)["msg"])

	user, err := env.store.FindUserByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	for name, body := range map[string]map[string]any{
		"no password": {"username": "alice"},
		"no username": {"password": "hunter22"},
		"empty":       {},
	} {
		w := env.do(t, http.MethodPost, "/register", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, "Missing username or password", decodeBody(t, w)["msg"], name)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{"username": "alice", "password": "hunter22"}
	first := env.do(t, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.do(t, http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, second)["msg"])

	// No duplicate row was created.
	user, err := env.store.FindUserByUsername("alice")
	require.NoError(t, err)
	others, err := env.store.ListUsersExcept(user.ID.String())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", "", map[string]any{
		"username": "alice",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/login", "", map[string]any{
		"username": "alice",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Login successful", body["msg"])

	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	// The issued token works against a protected endpoint.
	data := env.do(t, http.MethodGet, "/data", token, nil)
	assert.Equal(t, http.StatusOK, data.Code)
	assert.Contains(t, decodeBody(t, data)["message"], "Hello, alice!")
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "alice")

	for name, body := range map[string]map[string]any{
		"wrong password": {"username": "alice", "password": "nope"},
		"unknown user":   {"username": "mallory", "password": "password123"},
	} {
		w := env.do(t, http.MethodPost, "/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Equal(t, "Bad username or password", decodeBody(t, w)["msg"], name)
	}
}

func TestProtectedEndpointsRejectBadTokens(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/data", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
