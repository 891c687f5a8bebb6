package chat

import "context"

type Repository interface {
	ListMessages(ctx context.Context, userID, chatContext string) ([]Message, error)
	NextMessageOrder(ctx context.Context, userID, chatContext string) (int, error)
	CreateMessages(ctx context.Context, messages []Message) error
	DeleteMessages(ctx context.Context, userID, chatContext string) error
}

// Completer produces the assistant's reply for an ordered conversation
// history ending with the latest user message.
type Completer interface {
	Complete(ctx context.Context, history []Message) (string, error)
}
