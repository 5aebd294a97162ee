package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "reply-assist"

var (
	ErrEmptySecret  = errors.New("jwt secret is required")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims 会话令牌声明
type Claims struct {
	SessionID string `json:"session_id"`
	Flow      string `json:"flow,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager 签发和校验会话令牌
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager expiresIn单位为小时，<=0时令牌不过期
func NewTokenManager(secret string, expiresIn int) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(expiresIn) * time.Hour,
		now:    time.Now,
	}, nil
}

// GenerateToken 生成JWT令牌，flow为会话的引导流程
func (m *TokenManager) GenerateToken(sessionID, flow string) (string, error) {
	nowTime := m.now()

	claims := Claims{
		SessionID: sessionID,
		Flow:      flow,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(nowTime),
			Issuer:   tokenIssuer,
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(nowTime.Add(m.ttl))
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(m.secret)
}

// ParseToken 解析JWT令牌
func (m *TokenManager) ParseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid && claims.SessionID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
