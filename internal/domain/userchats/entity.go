package userchats

import "time"

// ChatSummary is one entry of a user's chat index.
type ChatSummary struct {
	ChatID string `json:"_id"`
	Title  string `json:"title"`
}

// UserChats is the per-user index of chat summaries, in creation order.
type UserChats struct {
	ID        string        `json:"_id"`
	UserID    string        `json:"userId"`
	Chats     []ChatSummary `json:"chats"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
