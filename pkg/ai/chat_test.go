package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newTestClient(t *testing.T, maxRetries int, fn roundTripperFunc) *Client {
	t.Helper()
	c := NewWithHTTPClient(configs.AI{
		BaseURL:    "http://upstream/api/v1/",
		APIKey:     "sk-test",
		Model:      "test-model",
		MaxRetries: maxRetries,
	}, &http.Client{Transport: fn}, logger.NewNop())
	c.retryInterval = time.Millisecond
	return c
}

func TestCompleteSendsChatRequest(t *testing.T) {
	c := newTestClient(t, 0, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v1/chat/completions", req.URL.Path)
		assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))

		var in chatRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, "test-model", in.Model)
		assert.Equal(t, 150, in.MaxTokens)
		assert.InDelta(t, 0.7, in.Temperature, 1e-9)
		require.Len(t, in.Messages, 2)
		assert.Equal(t, "system", in.Messages[0].Role)
		assert.Contains(t, in.Messages[0].Content, "communication style: casual.")
		assert.Contains(t, in.Messages[0].Content, "Target audience: creatives.")
		assert.Equal(t, "user", in.Messages[1].Role)
		assert.Equal(t, "prompt text", in.Messages[1].Content)

		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"hello there"}}]}`), nil
	})

	out, err := c.Complete(context.Background(), "prompt text", Context{CommunicationStyle: "casual", AudienceType: "creatives"}, ReplyOptions)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestSystemPromptDefaults(t *testing.T) {
	sp := SystemPrompt(Context{})
	assert.Contains(t, sp, "communication style: professional.")
	assert.Contains(t, sp, "Target audience: general professional network.")
}

func TestCompleteRetriesTransientFailures(t *testing.T) {
	var calls int32
	c := newTestClient(t, 2, func(req *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return jsonResponse(http.StatusServiceUnavailable, `{"error":{"message":"overloaded"}}`), nil
		}
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"third time"}}]}`), nil
	})

	out, err := c.Complete(context.Background(), "p", Context{}, ReplyOptions)
	require.NoError(t, err)
	assert.Equal(t, "third time", out)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCompleteGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, 1, func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`), nil
	})

	_, err := c.Complete(context.Background(), "p", Context{}, ReplyOptions)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "rate limited", apiErr.Message)
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, 3, func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusUnauthorized, `{"error":{"message":"bad key"}}`), nil
	})

	_, err := c.Complete(context.Background(), "p", Context{}, ReplyOptions)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad key", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteEmptyChoices(t *testing.T) {
	c := newTestClient(t, 2, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
	})

	_, err := c.Complete(context.Background(), "p", Context{}, ReplyOptions)
	assert.ErrorIs(t, err, ErrNoCompletion)
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	c := NewClient(configs.AI{BaseURL: "http://upstream"}, logger.NewNop())

	_, err := c.Complete(context.Background(), "p", Context{}, ReplyOptions)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateContentSuggestions(t *testing.T) {
	c := newTestClient(t, 0, func(req *http.Request) (*http.Response, error) {
		var in chatRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		require.Len(t, in.Messages, 1)
		assert.Equal(t, 300, in.MaxTokens)
		assert.InDelta(t, 0.8, in.Temperature, 1e-9)
		assert.Contains(t, in.Messages[0].Content, "Audience interests: technology, business.")
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"1. One\n\n2. Two\n   \n3. Three"}}]}`), nil
	})

	out, err := c.GenerateContentSuggestions(context.Background(), []string{"technology", "business"}, "practical insights")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. One", "2. Two", "3. Three"}, out)
}

func TestGenerateSchedulingRecommendations(t *testing.T) {
	c := newTestClient(t, 0, func(req *http.Request) (*http.Response, error) {
		var in chatRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, 200, in.MaxTokens)
		assert.InDelta(t, 0.6, in.Temperature, 1e-9)
		assert.Contains(t, in.Messages[0].Content, "Goals: increase_engagement, build_network")
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"Post at 9am"}}]}`), nil
	})

	out, err := c.GenerateSchedulingRecommendations(context.Background(), []string{"increase_engagement", "build_network"})
	require.NoError(t, err)
	assert.Equal(t, "Post at 9am", out)
}

func TestPersonalizedMessagePrompt(t *testing.T) {
	conn := models.Connection{Name: "Sarah Johnson", RelationshipType: "colleague", InteractionHistory: "frequent_interactions"}

	assert.Equal(t,
		"Write a personalized thank-you message for Sarah Johnson. Context: the workshop The relationship type is colleague with frequent_interactions interaction history.",
		PersonalizedMessagePrompt(conn, "thank-you", "the workshop"))
	assert.Equal(t,
		"Write a personalized follow-up message for Sarah Johnson. The relationship type is colleague with frequent_interactions interaction history.",
		PersonalizedMessagePrompt(conn, "follow-up", "  "))
}
