// Package store 提供替代浏览器本地存储的键值持久化
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BinLe1988/reply-assist/pkg/logger"
)

// 会话内的存储键
const (
	OnboardingKey = "reply_assist_onboarding"
	AnalyticsKey  = "reply_assist_analytics"
)

// ErrEmptyKey 键为空
var ErrEmptyKey = errors.New("store: empty key")

// Store 键值存储接口，写入为整值覆盖
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionKey 拼接会话作用域的键
func SessionKey(sessionID, name string) string {
	return sessionID + ":" + name
}

// Load 读取并解析JSON值。
// 键不存在或内容无法解析时返回newDefault()，解析失败只记录日志。
func Load[T any](ctx context.Context, s Store, key string, newDefault func() T, log *logger.Logger) (T, bool, error) {
	if key == "" {
		return newDefault(), false, ErrEmptyKey
	}
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return newDefault(), false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return newDefault(), false, nil
	}

	value := newDefault()
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn("Discarding malformed persisted state", "key", key, "error", err)
		return newDefault(), false, nil
	}
	return value, true, nil
}

// Save 序列化并写入
func Save[T any](ctx context.Context, s Store, key string, value T) error {
	if key == "" {
		return ErrEmptyKey
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
