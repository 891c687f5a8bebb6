package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo      Repository
	completer Completer
}

func NewService(repo Repository, completer Completer) *Service {
	return &Service{repo: repo, completer: completer}
}

func (s *Service) ListMessages(ctx context.Context, userID, chatContext string) ([]Message, error) {
	if !isValidContext(chatContext) {
		return nil, ErrInvalidContext
	}
	messages, err := s.repo.ListMessages(ctx, userID, chatContext)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return []Message{}, nil
	}
	return messages, nil
}

// Send appends the user's message, forwards the full ordered history to the
// completer, and stores the assistant reply with the following order. Both
// rows are written together so a completer failure leaves the conversation
// untouched.
func (s *Service) Send(ctx context.Context, input SendInput) (*Message, error) {
	if !isValidContext(input.Context) {
		return nil, ErrInvalidContext
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	history, err := s.repo.ListMessages(ctx, input.UserID, input.Context)
	if err != nil {
		return nil, err
	}

	nextOrder, err := s.repo.NextMessageOrder(ctx, input.UserID, input.Context)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userMessage := Message{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Context:      input.Context,
		Role:         RoleUser,
		Content:      content,
		MessageOrder: nextOrder,
		CreatedAt:    now,
	}

	reply, err := s.completer.Complete(ctx, append(history, userMessage))
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, ErrNoCompletion
	}

	assistantMessage := Message{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Context:      input.Context,
		Role:         RoleAssistant,
		Content:      reply,
		MessageOrder: nextOrder + 1,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateMessages(ctx, []Message{userMessage, assistantMessage}); err != nil {
		return nil, err
	}

	return &assistantMessage, nil
}

func (s *Service) ClearMessages(ctx context.Context, userID, chatContext string) error {
	if !isValidContext(chatContext) {
		return ErrInvalidContext
	}
	return s.repo.DeleteMessages(ctx, userID, chatContext)
}

func isValidContext(chatContext string) bool {
	return chatContext == ContextAsset || chatContext == ContextExpense
}
