package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/onboarding"
	"github.com/BinLe1988/reply-assist/pkg/session"
	"github.com/BinLe1988/reply-assist/pkg/store"
	"github.com/BinLe1988/reply-assist/pkg/utils"
)

type nopCompleter struct{}

func (nopCompleter) Complete(context.Context, string, ai.Context, ai.Options) (string, error) {
	return "", nil
}

func newSessionRouter(t *testing.T) (*gin.Engine, *utils.TokenManager, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := utils.NewTokenManager("middleware-secret", 1)
	require.NoError(t, err)
	sessions := session.NewManager(store.NewMemoryStore(), nopCompleter{}, 0, logger.NewNop())

	r := gin.New()
	r.Use(Session(tokens, sessions))
	r.GET("/whoami", func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sess.ID)
	})
	return r, tokens, sessions
}

func TestSessionMiddleware(t *testing.T) {
	r, tokens, sessions := newSessionRouter(t)
	sess := sessions.Create(context.Background(), onboarding.FlowFull)
	token, err := tokens.GenerateToken(sess.ID, string(sess.Flow))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, sess.ID, rec.Body.String())
			}
		})
	}
}

func TestSessionMiddlewareRestoresUnknownSession(t *testing.T) {
	r, tokens, sessions := newSessionRouter(t)
	token, err := tokens.GenerateToken("from-before-restart", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-before-restart", rec.Body.String())
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionMiddlewareRestoresQuickFlow(t *testing.T) {
	r, tokens, sessions := newSessionRouter(t)
	token, err := tokens.GenerateToken("quick-before-restart", string(onboarding.FlowQuick))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	sess, ok := sessions.Get("quick-before-restart")
	require.True(t, ok)
	assert.Equal(t, onboarding.FlowQuick, sess.Flow)
	assert.Len(t, sess.Onboarding.State().Steps, 3)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(nil))
	r.POST("/api/replies/generate", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/replies/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
