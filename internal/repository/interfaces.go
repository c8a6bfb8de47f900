package repository

import (
	"context"
	"time"

	"chat-history/internal/domain/chat"
	"chat-history/internal/domain/userchats"
)

type ChatRepository interface {
	// Create persists c and fills in its store-assigned ID and timestamps.
	Create(ctx context.Context, c *chat.Chat) error
	GetByIDForUser(ctx context.Context, id, userID string) (chat.Chat, error)
	// AppendTurns pushes turns onto the history of the chat owned by userID.
	// Returns ErrNotFound alongside the result when nothing matched.
	AppendTurns(ctx context.Context, id, userID string, turns []chat.Turn) (chat.UpdateResult, error)
}

type UserChatsRepository interface {
	// AddSummary creates the user's index or appends s to it in one atomic step.
	// Adding a summary whose chat id is already indexed is a no-op.
	AddSummary(ctx context.Context, userID string, s userchats.ChatSummary) error
	GetByUserID(ctx context.Context, userID string) (userchats.UserChats, error)
}

// StoreOptions bounds every store call.
type StoreOptions struct {
	Timeout time.Duration
	Retries int
}

func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Timeout: 5 * time.Second,
		Retries: 3,
	}
}
