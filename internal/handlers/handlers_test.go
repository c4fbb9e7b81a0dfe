package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pegcount/cribbage-backend/internal/database"
	"github.com/pegcount/cribbage-backend/internal/handlers"
	"github.com/pegcount/cribbage-backend/internal/middleware"
	"github.com/pegcount/cribbage-backend/internal/models"
	"github.com/pegcount/cribbage-backend/pkg/auth"
)

// testEnv wires the real handlers onto an in-memory database, mirroring the
// production route table.
type testEnv struct {
	router *gin.Engine
	store  *database.Database
	jwt    *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	store := database.NewDatabase(db)
	require.NoError(t, store.Migrate())

	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	authH := handlers.NewAuthHandler(store, jwtMgr, nil)
	userH := handlers.NewUserHandler(store)
	scoreH := handlers.NewScoreHandler(store)

	r := gin.New()
	r.POST("/login", authH.Login)
	r.POST("/register", authH.Register)
	r.GET("/message", handlers.Message)

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(jwtMgr, nil))
	{
		api.GET("/data", userH.GetData)
		api.POST("/data", userH.PostData)
		api.GET("/users", userH.ListUsers)
		api.POST("/score", scoreH.LogScore)
		api.GET("/dashboard-stats", scoreH.DashboardStats)
		api.POST("/logout", authH.Logout)
	}

	return &testEnv{router: r, store: store, jwt: jwtMgr}
}

// signUp creates a user directly in the store and returns it with a valid
// token, skipping the HTTP round-trip tests that cover registration itself.
func (e *testEnv) signUp(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, e.store.SaveUser(user))

	token, err := e.jwt.Generate(user.ID.String())
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func scorePayload() map[string]any {
	return map[string]any{
		"user_score":          121,
		"opponent_score":      90,
		"is_skunk":            false,
		"is_double_skunk":     false,
		"guest_opponent_name": "Bob",
	}
}
