package chat

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type fakeChatRepo struct {
	messages []Message
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, userID, chatContext string) ([]Message, error) {
	items := make([]Message, 0)
	for _, message := range r.messages {
		if message.UserID == userID && message.Context == chatContext {
			items = append(items, message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].MessageOrder < items[j].MessageOrder
	})
	return items, nil
}

func (r *fakeChatRepo) NextMessageOrder(ctx context.Context, userID, chatContext string) (int, error) {
	next := 1
	for _, message := range r.messages {
		if message.UserID == userID && message.Context == chatContext && message.MessageOrder >= next {
			next = message.MessageOrder + 1
		}
	}
	return next, nil
}

func (r *fakeChatRepo) CreateMessages(ctx context.Context, messages []Message) error {
	r.messages = append(r.messages, messages...)
	return nil
}

func (r *fakeChatRepo) DeleteMessages(ctx context.Context, userID, chatContext string) error {
	kept := r.messages[:0]
	for _, message := range r.messages {
		if message.UserID == userID && message.Context == chatContext {
			continue
		}
		kept = append(kept, message)
	}
	r.messages = kept
	return nil
}

type fakeCompleter struct {
	reply   string
	err     error
	history []Message
}

func (f *fakeCompleter) Complete(ctx context.Context, history []Message) (string, error) {
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSendStoresBothMessagesInOrder(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{reply: "You hold two assets."}
	svc := NewService(repo, completer)

	reply, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: ContextAsset,
		Content: " what do I own? ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.Role != RoleAssistant {
		t.Fatalf("expected assistant reply, got %q", reply.Role)
	}
	if reply.MessageOrder != 2 {
		t.Fatalf("expected order 2, got %d", reply.MessageOrder)
	}

	stored, _ := repo.ListMessages(context.Background(), "user-1", ContextAsset)
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(stored))
	}
	if stored[0].Role != RoleUser || stored[0].MessageOrder != 1 {
		t.Fatalf("expected user message first, got %+v", stored[0])
	}
	if stored[0].Content != "what do I own?" {
		t.Fatalf("expected trimmed content, got %q", stored[0].Content)
	}
}

func TestSendForwardsHistoryEndingWithNewMessage(t *testing.T) {
	repo := &fakeChatRepo{messages: []Message{
		{ID: "m1", UserID: "user-1", Context: ContextAsset, Role: RoleUser, Content: "hi", MessageOrder: 1},
		{ID: "m2", UserID: "user-1", Context: ContextAsset, Role: RoleAssistant, Content: "hello", MessageOrder: 2},
	}}
	completer := &fakeCompleter{reply: "sure"}
	svc := NewService(repo, completer)

	if _, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: ContextAsset,
		Content: "more",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(completer.history) != 3 {
		t.Fatalf("expected history of 3, got %d", len(completer.history))
	}
	last := completer.history[2]
	if last.Role != RoleUser || last.Content != "more" || last.MessageOrder != 3 {
		t.Fatalf("expected new user message last, got %+v", last)
	}
}

func TestSendCompleterFailureWritesNothing(t *testing.T) {
	repo := &fakeChatRepo{}
	completer := &fakeCompleter{err: errors.New("model unavailable")}
	svc := NewService(repo, completer)

	if _, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: ContextExpense,
		Content: "hello",
	}); err == nil {
		t.Fatalf("expected error from completer")
	}

	if len(repo.messages) != 0 {
		t.Fatalf("expected no messages stored, got %d", len(repo.messages))
	}
}

func TestSendEmptyCompletion(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := NewService(repo, &fakeCompleter{reply: "   "})

	_, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: ContextAsset,
		Content: "hello",
	})
	if !errors.Is(err, ErrNoCompletion) {
		t.Fatalf("expected ErrNoCompletion, got %v", err)
	}
	if len(repo.messages) != 0 {
		t.Fatalf("expected no messages stored, got %d", len(repo.messages))
	}
}

func TestSendInvalidContext(t *testing.T) {
	svc := NewService(&fakeChatRepo{}, &fakeCompleter{reply: "ok"})

	_, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: "portfolio",
		Content: "hello",
	})
	if !errors.Is(err, ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext, got %v", err)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	svc := NewService(&fakeChatRepo{}, &fakeCompleter{reply: "ok"})

	_, err := svc.Send(context.Background(), SendInput{
		UserID:  "user-1",
		Context: ContextAsset,
		Content: "   ",
	})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestContextsAreIsolated(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := NewService(repo, &fakeCompleter{reply: "ok"})

	if _, err := svc.Send(context.Background(), SendInput{UserID: "user-1", Context: ContextAsset, Content: "a"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Send(context.Background(), SendInput{UserID: "user-1", Context: ContextExpense, Content: "b"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	reply, err := svc.Send(context.Background(), SendInput{UserID: "user-1", Context: ContextAsset, Content: "c"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Each context keeps its own order counter.
	if reply.MessageOrder != 4 {
		t.Fatalf("expected order 4 within asset context, got %d", reply.MessageOrder)
	}

	expenseMessages, _ := repo.ListMessages(context.Background(), "user-1", ContextExpense)
	if len(expenseMessages) != 2 {
		t.Fatalf("expected expense context untouched, got %d messages", len(expenseMessages))
	}
}

func TestClearMessagesOnlyTargetContext(t *testing.T) {
	repo := &fakeChatRepo{messages: []Message{
		{ID: "m1", UserID: "user-1", Context: ContextAsset, Role: RoleUser, Content: "a", MessageOrder: 1},
		{ID: "m2", UserID: "user-1", Context: ContextExpense, Role: RoleUser, Content: "b", MessageOrder: 1},
		{ID: "m3", UserID: "user-2", Context: ContextAsset, Role: RoleUser, Content: "c", MessageOrder: 1},
	}}
	svc := NewService(repo, &fakeCompleter{reply: "ok"})

	if err := svc.ClearMessages(context.Background(), "user-1", ContextAsset); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.messages) != 2 {
		t.Fatalf("expected 2 messages left, got %d", len(repo.messages))
	}
	for _, message := range repo.messages {
		if message.UserID == "user-1" && message.Context == ContextAsset {
			t.Fatalf("expected user-1 asset messages cleared, found %+v", message)
		}
	}
}
