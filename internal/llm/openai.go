package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint. The
// file travels as a data URL content part, which multimodal gateways accept
// for PDFs.
type OpenAIClient struct {
	creds   Credentials
	baseURL string
}

// NewOpenAIClient creates a client. An empty baseURL uses api.openai.com.
func NewOpenAIClient(creds Credentials, baseURL string) *OpenAIClient {
	return &OpenAIClient{creds: creds, baseURL: baseURL}
}

// GenerateContent sends the instruction and the file in one user message.
func (o *OpenAIClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	key, err := o.creds.APIKey()
	if err != nil {
		return "", err
	}

	cfg := openai.DefaultConfig(key)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: req.Instruction},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: "data:" + req.MIMEType + ";base64," + req.Data},
					},
				},
			},
		},
		N: 1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
