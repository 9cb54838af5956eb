package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/GoSim-25-26J-441/moonlog-backend/config"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if token != "good-token" {
		return nil, errors.New("bad token")
	}
	return &auth.Token{UID: "uid-42", Claims: map[string]interface{}{"email": "a@b.c"}}, nil
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UserFirebaseUID(c), "email": c.GetString(CtxEmail)})
	})
	return r
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	r := newRouter(FirebaseAuthMiddleware(stubVerifier{}))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization token"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "missing authorization token"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "invalid token"},
		{"valid token", "Bearer good-token", http.StatusOK, `"uid":"uid-42"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestOptionalUser(t *testing.T) {
	r := newRouter(OptionalUser())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Contains(t, w.Body.String(), `"uid":"demo-user"`)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-Id", "  stargazer ")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"uid":"stargazer"`)
}

func TestOptionalUser_RejectsOversizedUID(t *testing.T) {
	r := newRouter(OptionalUser())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-Id", strings.Repeat("u", maxUIDLen+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFirebaseAuthMiddleware_TagsRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), zap.New(core)))
		c.Next()
	})
	r.GET("/me", FirebaseAuthMiddleware(stubVerifier{}), func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	entries := logs.FilterMessage("handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "uid-42", entries[0].ContextMap()["user_id"])
}

func TestInitializeFirebase_NotConfigured(t *testing.T) {
	_, err := InitializeFirebase(context.Background(), &config.FirebaseConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
