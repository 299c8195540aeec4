package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskdash/domain/model"
	"taskdash/domain/repository"
)

// Config selects the completion provider and its connection settings.
type Config struct {
	Provider string // openai | anthropic
	Endpoint string
	APIKey   string
	Model    string
}

// Client is a generic chat-completion wrapper covering the OpenAI and
// Anthropic request shapes behind one interface.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends the prompt and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var payload interface{}
	if c.config.Provider == "anthropic" {
		payload = map[string]interface{}{
			"model":      c.config.Model,
			"max_tokens": 1024,
			"messages":   []chatMessage{{Role: "user", Content: prompt}},
		}
	} else {
		payload = map[string]interface{}{
			"model":    c.config.Model,
			"messages": []chatMessage{{Role: "user", Content: prompt}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Provider == "anthropic" {
		req.Header.Set("x-api-key", c.config.APIKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	} else {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion request: %v", model.ErrRemoteAPI, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read completion response: %v", model.ErrRemoteAPI, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: completion returned %d: %s", model.ErrRemoteAPI, resp.StatusCode, string(respBody))
	}

	return c.extractText(respBody)
}

func (c *Client) extractText(respBody []byte) (string, error) {
	if c.config.Provider == "anthropic" {
		var ar struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(respBody, &ar); err != nil {
			return "", fmt.Errorf("%w: decode completion response: %v", model.ErrRemoteAPI, err)
		}
		if len(ar.Content) == 0 {
			return "", fmt.Errorf("%w: empty completion response", model.ErrRemoteAPI)
		}
		return ar.Content[0].Text, nil
	}

	var or struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &or); err != nil {
		return "", fmt.Errorf("%w: decode completion response: %v", model.ErrRemoteAPI, err)
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", model.ErrRemoteAPI)
	}
	return or.Choices[0].Message.Content, nil
}

var _ repository.IAICompletion = (*Client)(nil)
