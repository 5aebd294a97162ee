package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BinLe1988/reply-assist/pkg/onboarding"
	"github.com/BinLe1988/reply-assist/pkg/session"
	"github.com/BinLe1988/reply-assist/pkg/utils"
)

// 上下文键
const (
	SessionIDKey = "sessionID"
	SessionKey   = "session"
)

// Session 验证会话令牌并加载会话
func Session(tokens *utils.TokenManager, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 令牌有效但会话已被淘汰或进程已重启时，按ID和流程恢复
		sess := sessions.Open(c.Request.Context(), claims.SessionID, onboarding.Flow(claims.Flow))

		c.Set(SessionIDKey, claims.SessionID)
		c.Set(SessionKey, sess)

		c.Next()
	}
}

// CurrentSession 取出中间件设置的会话
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
