// Package onboarding 实现新用户引导的状态机
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

// Flow 引导流程
type Flow string

const (
	FlowFull  Flow = "full"
	FlowQuick Flow = "quick"
)

// 引导数据字段
const (
	FieldCommunicationStyle = "communication_style"
	FieldAudienceType       = "audience_type"
	FieldGoals              = "goals"
	FieldConnectedPlatforms = "connected_platforms"
)

var (
	ErrUnknownField = errors.New("unknown onboarding field")
	ErrInvalidValue = errors.New("invalid onboarding value")
)

var fullSteps = []models.OnboardingStep{
	{ID: "welcome", Title: "Welcome to Reply Assist", Description: "Your AI-powered social media engagement companion"},
	{ID: "communication-style", Title: "Communication Style", Description: "How would you like your AI replies to sound?"},
	{ID: "audience-goals", Title: "Audience & Goals", Description: "Tell us about your target audience and objectives"},
	{ID: "platform-connect", Title: "Connect Platforms", Description: "Connect your social media accounts (optional)"},
	{ID: "first-reply", Title: "Generate Your First Reply", Description: "Let's create your first AI-powered response"},
	{ID: "complete", Title: "You're All Set!", Description: "Welcome to the future of social media engagement"},
}

var quickSteps = []models.OnboardingStep{
	{ID: "welcome", Title: "Welcome"},
	{ID: "connect", Title: "Connect"},
	{ID: "start", Title: "Start"},
}

// Steps 返回流程的步骤列表
func Steps(flow Flow) []models.OnboardingStep {
	src := fullSteps
	if flow == FlowQuick {
		src = quickSteps
	}
	return append([]models.OnboardingStep(nil), src...)
}

// ProfileUpdater 引导结束后同步用户画像
type ProfileUpdater interface {
	ApplyOnboarding(rec models.OnboardingRecord)
}

// State 状态机快照
type State struct {
	Flow        Flow                    `json:"flow"`
	Steps       []models.OnboardingStep `json:"steps"`
	CurrentStep int                     `json:"currentStep"`
	Step        models.OnboardingStep   `json:"step"`
	Progress    float64                 `json:"progress"`
	IsFirstStep bool                    `json:"isFirstStep"`
	IsLastStep  bool                    `json:"isLastStep"`
	IsCompleted bool                    `json:"isCompleted"`
	CanAdvance  bool                    `json:"canAdvance"`
	Data        models.OnboardingRecord `json:"onboardingData"`
}

// Machine 引导状态机
type Machine struct {
	store   store.Store
	key     string
	profile ProfileUpdater
	log     *logger.Logger
	now     func() time.Time

	mu        sync.Mutex
	flow      Flow
	steps     []models.OnboardingStep
	current   int
	data      models.OnboardingRecord
	completed bool
}

// NewMachine 创建状态机，已完成的记录直接定位到最后一步
func NewMachine(ctx context.Context, s store.Store, sessionID string, flow Flow, profile ProfileUpdater, log *logger.Logger) *Machine {
	if flow != FlowQuick {
		flow = FlowFull
	}
	m := &Machine{
		store:   s,
		key:     store.SessionKey(sessionID, store.OnboardingKey),
		profile: profile,
		log:     log,
		now:     time.Now,
		flow:    flow,
		steps:   Steps(flow),
		data:    models.NewOnboardingRecord(),
	}

	rec, ok, err := store.Load(ctx, s, m.key, models.NewOnboardingRecord, log)
	if err != nil {
		log.Warn("Error loading onboarding record", "error", err)
	}
	if ok && rec.Completed {
		m.data = rec
		m.completed = true
		m.current = len(m.steps) - 1
	}
	return m
}

// State 当前状态
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Machine) stateLocked() State {
	return State{
		Flow:        m.flow,
		Steps:       append([]models.OnboardingStep(nil), m.steps...),
		CurrentStep: m.current,
		Step:        m.steps[m.current],
		Progress:    float64(m.current+1) / float64(len(m.steps)) * 100,
		IsFirstStep: m.current == 0,
		IsLastStep:  m.current == len(m.steps)-1,
		IsCompleted: m.completed,
		CanAdvance:  m.canAdvanceLocked(),
		Data:        m.data.Clone(),
	}
}

func (m *Machine) CurrentStep() models.OnboardingStep {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps[m.current]
}

func (m *Machine) Progress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.current+1) / float64(len(m.steps)) * 100
}

func (m *Machine) IsFirstStep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current == 0
}

func (m *Machine) IsLastStep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current == len(m.steps)-1
}

func (m *Machine) IsCompleted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

// Next 前进一步，最后一步时不变
func (m *Machine) Next() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current < len(m.steps)-1 {
		m.current++
	}
	return m.stateLocked()
}

// Previous 后退一步，第一步时不变
func (m *Machine) Previous() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current > 0 {
		m.current--
	}
	return m.stateLocked()
}

// GoToStep 跳转到指定步骤，越界时忽略
func (m *Machine) GoToStep(n int) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n >= 0 && n < len(m.steps) {
		m.current = n
	}
	return m.stateLocked()
}

// CanAdvance 当前步骤的数据是否满足前进条件
func (m *Machine) CanAdvance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canAdvanceLocked()
}

func (m *Machine) canAdvanceLocked() bool {
	switch m.steps[m.current].ID {
	case "communication-style":
		return m.data.CommunicationStyle != ""
	case "audience-goals":
		return m.data.AudienceType != "" && len(m.data.Goals) > 0
	default:
		return true
	}
}

// UpdateData 更新单个字段
func (m *Machine) UpdateData(field string, value interface{}) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch field {
	case FieldCommunicationStyle, FieldAudienceType:
		s, ok := value.(string)
		if !ok {
			return m.stateLocked(), fmt.Errorf("%w: %s must be a string", ErrInvalidValue, field)
		}
		if field == FieldCommunicationStyle {
			m.data.CommunicationStyle = s
		} else {
			m.data.AudienceType = s
		}
	case FieldGoals, FieldConnectedPlatforms:
		list, err := toStrings(value)
		if err != nil {
			return m.stateLocked(), fmt.Errorf("%w: %s %v", ErrInvalidValue, field, err)
		}
		if field == FieldGoals {
			m.data.Goals = list
		} else {
			m.data.ConnectedPlatforms = list
		}
	default:
		return m.stateLocked(), fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return m.stateLocked(), nil
}

// toStrings JSON解码后的数组是[]interface{}
func toStrings(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("must contain only strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New("must be a list of strings")
	}
}

// ToggleGoal 选中或取消目标
func (m *Machine) ToggleGoal(goalID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	goals := make([]string, 0, len(m.data.Goals)+1)
	found := false
	for _, g := range m.data.Goals {
		if g == goalID {
			found = true
			continue
		}
		goals = append(goals, g)
	}
	if !found {
		goals = append(goals, goalID)
	}
	m.data.Goals = goals
	return m.stateLocked()
}

// Complete 完成引导：持久化记录并同步画像，重复调用不做任何事
func (m *Machine) Complete(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed {
		return m.stateLocked(), nil
	}

	rec := m.data.Clone()
	at := m.now().UTC()
	rec.Completed = true
	rec.CompletedAt = &at
	return m.finishLocked(ctx, rec)
}

// Skip 跳过引导，使用默认偏好
func (m *Machine) Skip(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed {
		return m.stateLocked(), nil
	}
	return m.finishLocked(ctx, models.SkippedOnboardingRecord(m.now().UTC()))
}

func (m *Machine) finishLocked(ctx context.Context, rec models.OnboardingRecord) (State, error) {
	if err := store.Save(ctx, m.store, m.key, rec); err != nil {
		return m.stateLocked(), err
	}
	if m.profile != nil {
		m.profile.ApplyOnboarding(rec.Clone())
	}

	m.data = rec
	m.completed = true
	m.current = len(m.steps) - 1
	m.log.Info("Onboarding finished", "skipped", rec.Skipped)
	return m.stateLocked(), nil
}

// Reset 删除记录并回到第一步
func (m *Machine) Reset(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, m.key); err != nil {
		return m.stateLocked(), fmt.Errorf("delete onboarding record: %w", err)
	}
	m.current = 0
	m.data = models.NewOnboardingRecord()
	m.completed = false
	return m.stateLocked(), nil
}
