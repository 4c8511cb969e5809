package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const DefaultDeepSeekURL = "https://api.deepseek.com/v1/chat/completions"

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
	TopP           float64           `json:"top_p"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// DeepSeekClient generates text through the DeepSeek chat completions API.
type DeepSeekClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewDeepSeekClient creates a DeepSeek client. An empty apiURL selects the
// public endpoint.
func NewDeepSeekClient(apiKey, apiURL string) (*DeepSeekClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY is empty")
	}
	if apiURL == "" {
		apiURL = DefaultDeepSeekURL
	}
	return &DeepSeekClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  "deepseek-chat",
		client: &http.Client{Timeout: 90 * time.Second},
	}, nil
}

func (c *DeepSeekClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: "You are a professional chef and nutritionist. When asked for JSON, respond only with JSON."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   8192,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[DeepSeekClient] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return result.Choices[0].Message.Content, nil
}
