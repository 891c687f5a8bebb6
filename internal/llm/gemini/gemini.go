// Package gemini implements the chat completer on top of the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"finance-app-go/internal/domain/chat"
)

const systemInstruction = `You are a personal finance assistant inside an asset and expense tracker.
Answer questions about the user's portfolio, spending and savings.
Be concise, never invent holdings the user did not mention, and remind the
user that you do not provide regulated investment advice.`

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends the conversation to Gemini. The last history entry is the
// new user turn; everything before it seeds the chat session.
func (c *Client) Complete(ctx context.Context, history []chat.Message) (string, error) {
	if len(history) == 0 {
		return "", chat.ErrEmptyMessage
	}

	last := history[len(history)-1]
	prior := make([]*genai.Content, 0, len(history)-1)
	for _, message := range history[:len(history)-1] {
		role := genai.RoleUser
		if message.Role == chat.RoleAssistant {
			role = genai.RoleModel
		}
		prior = append(prior, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: message.Content}},
		})
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}

	session, err := c.client.Chats.Create(ctx, c.model, config, prior)
	if err != nil {
		return "", fmt.Errorf("create chat session: %w", err)
	}

	resp, err := session.Send(ctx, &genai.Part{Text: last.Content})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", chat.ErrNoCompletion
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
