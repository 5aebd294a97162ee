package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"github.com/cenkalti/backoff/v5"
)

var (
	ErrNotConfigured = errors.New("ai: api key not configured")
	ErrNoCompletion  = errors.New("no response from AI")
)

// Context 生成时的风格上下文，用于构建系统消息
type Context struct {
	CommunicationStyle string
	AudienceType       string
	Platform           models.Platform
}

// Options 调用点参数
type Options struct {
	MaxTokens   int
	Temperature float64
}

// 各调用点固定的采样参数
var (
	ReplyOptions      = Options{MaxTokens: 150, Temperature: 0.7}
	SuggestionOptions = Options{MaxTokens: 300, Temperature: 0.8}
	SchedulingOptions = Options{MaxTokens: 200, Temperature: 0.6}
)

// Completer 语言模型补全接口
type Completer interface {
	Complete(ctx context.Context, prompt string, c Context, opts Options) (string, error)
}

// 请求结构体
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// 响应结构体
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client OpenAI兼容的chat completion客户端
type Client struct {
	baseURL       string
	apiKey        string
	model         string
	maxRetries    int
	retryInterval time.Duration
	httpClient    *http.Client
	log           *logger.Logger
}

// NewClient 创建客户端
func NewClient(cfg configs.AI, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return NewWithHTTPClient(cfg, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient 使用自定义http.Client，测试中替换Transport
func NewWithHTTPClient(cfg configs.AI, httpClient *http.Client, log *logger.Logger) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		model:         cfg.Model,
		maxRetries:    maxRetries,
		retryInterval: 500 * time.Millisecond,
		httpClient:    httpClient,
		log:           log,
	}
}

// SystemPrompt 根据用户风格和受众构建系统消息
func SystemPrompt(c Context) string {
	style := c.CommunicationStyle
	if style == "" {
		style = "professional"
	}
	audience := c.AudienceType
	if audience == "" {
		audience = "general professional network"
	}
	return fmt.Sprintf(`You are an AI assistant helping users create engaging social media responses.
Consider the user's communication style: %s.
Target audience: %s.
Keep responses authentic, engaging, and appropriate for the platform.`, style, audience)
}

// Complete 生成回复，带系统消息
func (c *Client) Complete(ctx context.Context, prompt string, rc Context, opts Options) (string, error) {
	return c.chat(ctx, []message{
		{Role: "system", Content: SystemPrompt(rc)},
		{Role: "user", Content: prompt},
	}, opts)
}

// CompleteUser 只发送用户消息
func (c *Client) CompleteUser(ctx context.Context, prompt string, opts Options) (string, error) {
	return c.chat(ctx, []message{{Role: "user", Content: prompt}}, opts)
}

func (c *Client) chat(ctx context.Context, messages []message, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	jsonData, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	attempt := 0
	content, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		out, err := c.do(ctx, jsonData)
		if err != nil && !isTransient(err) {
			return "", backoff.Permanent(err)
		}
		if err != nil {
			c.log.Warn("AI request failed", "attempt", attempt, "error", err)
		}
		return out, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.maxRetries+1)))
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ai read response: %w", err)
	}

	var response chatResponse
	decodeErr := json.Unmarshal(raw, &response)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && response.Error != nil && response.Error.Message != "" {
			msg = response.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "malformed response: " + decodeErr.Error()}
	}
	if response.Error != nil && response.Error.Message != "" {
		return "", &APIError{StatusCode: resp.StatusCode, Message: response.Error.Message}
	}
	if len(response.Choices) == 0 {
		return "", ErrNoCompletion
	}

	return response.Choices[0].Message.Content, nil
}
