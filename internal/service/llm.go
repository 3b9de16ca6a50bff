package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitbite/fitbite-backend/config"
)

// estimateCacheTTL bounds how long an identical prompt reuses a previous
// model answer instead of paying for a new completion.
const estimateCacheTTL = 24 * time.Hour

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat-completions API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

// LLMService sends natural-language prompts to a DeepSeek-style
// chat-completions API and returns the raw text of the first choice.
// It makes a single attempt per call: retries, timeouts and backoff are the
// caller's policy, not this client's.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

// NewLLMService creates a new LLMService instance. The Redis client is
// optional; without one responses are simply not cached.
func NewLLMService(cfg *config.Config, redisClient *redis.Client) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY must be set")
	}

	return &LLMService{
		apiKey: cfg.LLMAPIKey,
		apiURL: cfg.LLMAPIURL,
		client: http.DefaultClient,
		redis:  redisClient,
	}, nil
}

// Generate sends prompt to the external generator and returns the raw
// response text. Every failure mode (transport error, non-200 status,
// empty choice list) surfaces as ErrEstimationUnavailable.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	cacheKey := fmt.Sprintf("estimate:%x", sha256.Sum256([]byte(prompt)))
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	reqBody := Request{
		Model: "deepseek-chat",
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrEstimationUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrEstimationUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEstimationUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrEstimationUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("estimation request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrEstimationUnavailable, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrEstimationUnavailable, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrEstimationUnavailable)
	}

	content := result.Choices[0].Message.Content

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, content, estimateCacheTTL).Err(); err != nil {
			log.Printf("failed to cache estimation response: %v", err)
		}
	}

	return content, nil
}
