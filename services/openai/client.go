package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI API base URL; any OpenAI-compatible
	// endpoint (Azure OpenAI proxy, local inference) can be substituted
	DefaultBaseURL = "https://api.openai.com"
	// DefaultTimeout is longer for LLM completion requests
	DefaultTimeout = 120 * time.Second
	// DefaultModel is the default chat model
	DefaultModel = "gpt-4o-mini"
)

// ChatClient handles OpenAI-compatible chat completion API calls
type ChatClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// Config holds configuration for the chat client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Model   string
}

// NewChatClient creates a new chat completion client
func NewChatClient(config Config) *ChatClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &ChatClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		model: config.Model,
	}
}

// IsConfigured reports whether the client has an API key set
func (c *ChatClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Message represents a message in the chat completion request
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}

// ResponseFormatType defines the type of response format
type ResponseFormatType string

const (
	// ResponseFormatText is for plain text responses (default)
	ResponseFormatText ResponseFormatType = "text"
	// ResponseFormatJSON requests JSON object output
	ResponseFormatJSON ResponseFormatType = "json_object"
)

// ResponseFormat defines the response format for chat completions
type ResponseFormat struct {
	Type ResponseFormatType `json:"type"`
}

// CompletionRequest represents an OpenAI-compatible chat completion request
type CompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// CompletionChoice represents a choice in the completion response
type CompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse represents the response from the chat completion API
type CompletionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   Usage              `json:"usage"`
}

// Option is a function that modifies the completion request
type Option func(*CompletionRequest)

// WithTemperature sets the temperature for the request
func WithTemperature(temp float64) Option {
	return func(req *CompletionRequest) {
		req.Temperature = temp
	}
}

// WithMaxTokens sets the max tokens for the request
func WithMaxTokens(tokens int) Option {
	return func(req *CompletionRequest) {
		req.MaxTokens = tokens
	}
}

// WithModel sets a different model for the request
func WithModel(model string) Option {
	return func(req *CompletionRequest) {
		req.Model = model
	}
}

// WithResponseFormatJSON enables JSON object output mode
func WithResponseFormatJSON() Option {
	return func(req *CompletionRequest) {
		req.ResponseFormat = &ResponseFormat{
			Type: ResponseFormatJSON,
		}
	}
}

// ChatCompletion sends a chat completion request to the API
func (c *ChatClient) ChatCompletion(ctx context.Context, messages []Message, options ...Option) (*CompletionResponse, error) {
	req := CompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   2048,
		Stream:      false,
	}

	// Apply options
	for _, opt := range options {
		opt(&req)
	}

	return c.sendChatCompletion(ctx, req)
}

// sendChatCompletion performs the actual API request
func (c *ChatClient) sendChatCompletion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers (OpenAI-compatible format)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	// Perform request
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for errors
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat completion API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	// Parse response
	var result CompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// SimpleCompletion is a convenience method for simple single-turn completions
func (c *ChatClient) SimpleCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	resp, err := c.ChatCompletion(ctx, messages, options...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat completion API")
	}

	return resp.Choices[0].Message.Content, nil
}

// JSONCompletion is a convenience method for getting JSON responses
// It sets up the system prompt to request JSON output
func (c *ChatClient) JSONCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error) {
	// Enhance system prompt to request JSON
	enhancedSystemPrompt := systemPrompt + "\n\nYou MUST respond with valid JSON only. Do not include any markdown formatting, code blocks, or explanatory text. Output raw JSON only."

	options = append(options, WithResponseFormatJSON())

	return c.SimpleCompletion(ctx, enhancedSystemPrompt, userPrompt, options...)
}

// HealthCheck verifies the chat completion API is accessible
func (c *ChatClient) HealthCheck(ctx context.Context) error {
	messages := []Message{
		{Role: "user", Content: "Say 'ok' if you can hear me."},
	}

	_, err := c.ChatCompletion(ctx, messages, WithMaxTokens(10))
	return err
}

// ExtractContent extracts the content from a completion response
func (r *CompletionResponse) ExtractContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
