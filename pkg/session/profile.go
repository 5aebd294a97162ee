package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BinLe1988/reply-assist/models"
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrUnknownPlan       = errors.New("unknown subscription plan")
	ErrUnknownPlatform   = errors.New("unknown platform")
	ErrEmptyPost         = errors.New("post content is required")
)

var platformColors = map[models.Platform]string{
	models.PlatformLinkedIn:  "0077B5",
	models.PlatformInstagram: "E4405F",
	models.PlatformTwitter:   "000000",
	models.PlatformFacebook:  "1877F2",
}

// Profile 会话内的用户画像、人脉、帖子与订阅状态
type Profile struct {
	connectDelay time.Duration
	now          func() time.Time
	followers    func() int

	mu          sync.Mutex
	user        models.UserProfile
	connections []models.Connection
	posts       []models.Post
	accounts    map[string]models.SocialAccount
	subscribed  bool
	checkout    *models.CheckoutSession
}

// NewProfile 使用演示数据初始化
func NewProfile(connectDelay time.Duration) *Profile {
	now := time.Now().UTC()
	return &Profile{
		connectDelay: connectDelay,
		now:          time.Now,
		followers:    func() int { return rand.IntN(10000) + 1000 },
		user:         models.NewMockProfile(),
		connections: []models.Connection{
			{ID: 1, Name: "Sarah Johnson", RelationshipType: "colleague", InteractionHistory: "frequent_interactions"},
			{ID: 2, Name: "Mike Chen", RelationshipType: "client", InteractionHistory: "occasional_interactions"},
		},
		posts: []models.Post{
			{
				ID:                uuid.New().String(),
				Content:           "Just launched a new project! Excited to share with everyone.",
				Timestamp:         now,
				EngagementMetrics: models.PostEngagement{Likes: 25, Comments: 8, Shares: 3},
			},
			{
				ID:                uuid.New().String(),
				Content:           "Great insights from today's conference on AI and productivity.",
				Timestamp:         now.Add(-24 * time.Hour),
				EngagementMetrics: models.PostEngagement{Likes: 42, Comments: 15, Shares: 7},
			},
		},
		accounts: make(map[string]models.SocialAccount),
	}
}

// User 用户画像副本
func (p *Profile) User() models.UserProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user.Clone()
}

// ReplyContext 生成回复使用的用户上下文
func (p *Profile) ReplyContext() models.UserContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	return models.UserContext{
		CommunicationStyle: string(p.user.CommunicationStyle),
		AudienceType:       p.user.AudiencePreferences.Demographics,
		Goals:              append([]string(nil), p.user.Goals...),
	}
}

// Update 部分更新画像
func (p *Profile) Update(req models.ProfileUpdateRequest) models.UserProfile {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.Name != nil {
		p.user.Name = *req.Name
	}
	if req.CommunicationStyle != nil {
		p.user.CommunicationStyle = *req.CommunicationStyle
	}
	if req.Goals != nil {
		p.user.Goals = append([]string{}, req.Goals...)
	}
	if req.Interests != nil {
		p.user.AudiencePreferences.Interests = append([]string{}, req.Interests...)
	}
	return p.user.Clone()
}

// ApplyOnboarding 引导结束时同步偏好
func (p *Profile) ApplyOnboarding(rec models.OnboardingRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.user.CommunicationStyle = models.CommunicationStyle(rec.CommunicationStyle)
	p.user.AudiencePreferences = models.AudiencePreferences{
		Demographics:    rec.AudienceType,
		Interests:       []string{},
		EngagementTimes: models.DefaultEngagementTimes(),
	}
	p.user.Goals = append([]string{}, rec.Goals...)
	p.user.ConnectedPlatforms = append([]string{}, rec.ConnectedPlatforms...)
	p.user.OnboardingCompleted = true
}

func (p *Profile) Connections() []models.Connection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Connection(nil), p.connections...)
}

// FindConnection 按ID查找联系人
func (p *Profile) FindConnection(id int) (models.Connection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.connections {
		if c.ID == id {
			return c, true
		}
	}
	return models.Connection{}, false
}

// Posts 帖子列表，最新在前
func (p *Profile) Posts() []models.Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Post(nil), p.posts...)
}

// AddPost 新帖子插入到最前
func (p *Profile) AddPost(content string, at time.Time, scheduled bool) (models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return models.Post{}, ErrEmptyPost
	}
	if at.IsZero() {
		at = p.now().UTC()
	}
	post := models.Post{
		ID:        uuid.New().String(),
		Content:   content,
		Timestamp: at,
		Scheduled: scheduled,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append([]models.Post{post}, p.posts...)
	return post, nil
}

// TopPosts 按点赞数取前n条
func (p *Profile) TopPosts(n int) []models.Post {
	posts := p.Posts()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].EngagementMetrics.Likes > posts[j].EngagementMetrics.Likes
	})
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// Accounts 已连接的社交账号，按平台排序
func (p *Profile) Accounts() []models.SocialAccount {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.SocialAccount, 0, len(p.accounts))
	for _, a := range p.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out
}

// ConnectSocialAccount 模拟连接社交账号
func (p *Profile) ConnectSocialAccount(ctx context.Context, platform string) (models.SocialAccount, error) {
	name := models.Platform(strings.ToLower(strings.TrimSpace(platform)))
	if !models.IsKnownPlatform(name) {
		return models.SocialAccount{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	if p.connectDelay > 0 {
		timer := time.NewTimer(p.connectDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.SocialAccount{}, ctx.Err()
		case <-timer.C:
		}
	}

	account := models.SocialAccount{
		Platform:    string(name),
		Username:    "@user_" + string(name),
		Followers:   p.followers(),
		Avatar:      fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=%s&color=fff", name, platformColors[name]),
		ConnectedAt: p.now().UTC(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[account.Platform] = account
	for _, existing := range p.user.ConnectedPlatforms {
		if existing == account.Platform {
			return account, nil
		}
	}
	p.user.ConnectedPlatforms = append(p.user.ConnectedPlatforms, account.Platform)
	return account, nil
}

// IsSubscribed 是否已订阅
func (p *Profile) IsSubscribed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribed
}

// Checkout 最近一次模拟支付
func (p *Profile) Checkout() *models.CheckoutSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.checkout == nil {
		return nil
	}
	c := *p.checkout
	return &c
}

// Subscribe 模拟订阅，不产生真实扣款
func (p *Profile) Subscribe(planID string) (models.CheckoutSession, error) {
	plan, ok := models.FindSubscriptionPlan(planID)
	if !ok {
		return models.CheckoutSession{}, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.subscribed {
		return models.CheckoutSession{}, ErrAlreadySubscribed
	}

	checkout := models.CheckoutSession{
		ID:        uuid.New().String(),
		PlanID:    plan.ID,
		Amount:    plan.Price,
		Status:    models.CheckoutCompleted,
		CreatedAt: p.now().UTC(),
	}
	p.checkout = &checkout
	p.subscribed = true
	return checkout, nil
}
