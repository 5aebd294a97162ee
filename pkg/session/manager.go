// Package session 管理会话及其各组件
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/analytics"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/onboarding"
	"github.com/BinLe1988/reply-assist/pkg/reply"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

// DefaultIdleTTL 会话闲置多久后从内存移除
const DefaultIdleTTL = 30 * time.Minute

// Session 一个会话拥有的全部组件，创建后不再替换
type Session struct {
	ID         string
	Flow       onboarding.Flow
	CreatedAt  time.Time
	Profile    *Profile
	Onboarding *onboarding.Machine
	Replies    *reply.Engine
	Analytics  *analytics.Tracker

	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen 最近一次访问时间
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Option 管理器选项
type Option func(*Manager)

// WithIdleTTL 设置闲置淘汰时间，<=0时不淘汰
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.idleTTL = ttl }
}

// Manager 会话注册表。
// 闲置超过idleTTL的会话被移除，之后凭令牌访问时从持久化状态重建。
type Manager struct {
	store        store.Store
	completer    ai.Completer
	log          *logger.Logger
	connectDelay time.Duration
	idleTTL      time.Duration
	now          func() time.Time

	mu        sync.RWMutex
	sessions  map[string]*Session
	lastSweep time.Time
}

// NewManager 创建会话管理器
func NewManager(s store.Store, completer ai.Completer, connectDelay time.Duration, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:        s,
		completer:    completer,
		log:          log,
		connectDelay: connectDelay,
		idleTTL:      DefaultIdleTTL,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create 新建会话
func (m *Manager) Create(ctx context.Context, flow onboarding.Flow) *Session {
	m.maybeSweep()

	sess := m.build(ctx, uuid.New().String(), flow)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.log.Info("Session created", "session", sess.ID, "flow", sess.Flow)
	return sess
}

// Get 查找内存中的会话
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		sess.touch(m.now())
	}
	return sess, ok
}

// Open 查找会话，不在内存中时按持久化状态和令牌中的流程重建
func (m *Manager) Open(ctx context.Context, id string, flow onboarding.Flow) *Session {
	if sess, ok := m.Get(id); ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.touch(m.now())
		return sess
	}
	sess := m.build(ctx, id, flow)
	m.sessions[id] = sess
	m.log.Info("Session restored", "session", id, "flow", sess.Flow)
	return sess
}

// Len 当前会话数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle 移除闲置超时的会话，返回移除数量
func (m *Manager) EvictIdle() int {
	if m.idleTTL <= 0 {
		return 0
	}
	now := m.now()
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSweep = now

	evicted := 0
	for id, sess := range m.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.log.Info("Evicted idle sessions", "count", evicted, "remaining", len(m.sessions))
	}
	return evicted
}

// maybeSweep 创建会话时顺带清理，间隔不小于idleTTL的四分之一
func (m *Manager) maybeSweep() {
	if m.idleTTL <= 0 {
		return
	}
	m.mu.RLock()
	due := m.now().Sub(m.lastSweep) >= m.idleTTL/4
	m.mu.RUnlock()
	if due {
		m.EvictIdle()
	}
}

// Run 定期清理闲置会话，ctx结束时返回
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = m.idleTTL / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

func (m *Manager) build(ctx context.Context, id string, flow onboarding.Flow) *Session {
	if flow != onboarding.FlowQuick {
		flow = onboarding.FlowFull
	}
	log := m.log.With("session", id)
	profile := NewProfile(m.connectDelay)
	machine := onboarding.NewMachine(ctx, m.store, id, flow, profile, log)

	// 已完成引导的会话恢复其偏好
	if st := machine.State(); st.IsCompleted {
		profile.ApplyOnboarding(st.Data)
	}

	sess := &Session{
		ID:         id,
		Flow:       flow,
		CreatedAt:  m.now().UTC(),
		Profile:    profile,
		Onboarding: machine,
		Replies:    reply.NewEngine(m.completer, log),
		Analytics:  analytics.NewTracker(ctx, m.store, id, log),
	}
	sess.touch(m.now())
	return sess
}
