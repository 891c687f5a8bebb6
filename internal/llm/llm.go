// Package llm selects the configured chat completion provider.
package llm

import (
	"context"
	"errors"
	"fmt"

	"finance-app-go/internal/config"
	chatdomain "finance-app-go/internal/domain/chat"
	"finance-app-go/internal/llm/gemini"
)

var ErrNotConfigured = errors.New("llm provider is not configured")

// NewCompleter builds the completer named by cfg.Provider. A missing API key
// yields a completer that fails per call instead of blocking startup; an
// unknown provider is a startup error.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (chatdomain.Completer, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return disabled{}, nil
		}
		return gemini.New(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

type disabled struct{}

func (disabled) Complete(ctx context.Context, history []chatdomain.Message) (string, error) {
	return "", ErrNotConfigured
}
