package services

import (
	"context"
	"fmt"
	"sync"

	"chat-history/internal/domain/chat"
	"chat-history/internal/domain/userchats"
	chaterrors "chat-history/pkg/errors"
)

type memoryChatRepo struct {
	mu        sync.Mutex
	seq       int
	chats     map[string]*chat.Chat
	createErr error
}

func newMemoryChatRepo() *memoryChatRepo {
	return &memoryChatRepo{chats: map[string]*chat.Chat{}}
}

func (r *memoryChatRepo) Create(ctx context.Context, c *chat.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	c.ID = fmt.Sprintf("chat-%d", r.seq)
	stored := *c
	stored.History = append([]chat.Turn(nil), c.History...)
	r.chats[c.ID] = &stored
	return nil
}

func (r *memoryChatRepo) GetByIDForUser(ctx context.Context, id, userID string) (chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok || c.UserID != userID {
		return chat.Chat{}, chaterrors.ErrNotFound
	}
	out := *c
	out.History = append([]chat.Turn(nil), c.History...)
	return out, nil
}

func (r *memoryChatRepo) AppendTurns(ctx context.Context, id, userID string, turns []chat.Turn) (chat.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok || c.UserID != userID {
		return chat.UpdateResult{Acknowledged: true}, chaterrors.ErrNotFound
	}
	c.History = append(c.History, turns...)
	return chat.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memoryChatRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}

type memoryUserChatsRepo struct {
	mu     sync.Mutex
	byUser map[string]*userchats.UserChats
	addErr error
	getErr error
}

func newMemoryUserChatsRepo() *memoryUserChatsRepo {
	return &memoryUserChatsRepo{byUser: map[string]*userchats.UserChats{}}
}

func (r *memoryUserChatsRepo) AddSummary(ctx context.Context, userID string, s userchats.ChatSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	index, ok := r.byUser[userID]
	if !ok {
		index = &userchats.UserChats{UserID: userID}
		r.byUser[userID] = index
	}
	for _, existing := range index.Chats {
		if existing.ChatID == s.ChatID {
			return nil
		}
	}
	index.Chats = append(index.Chats, s)
	return nil
}

func (r *memoryUserChatsRepo) GetByUserID(ctx context.Context, userID string) (userchats.UserChats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return userchats.UserChats{}, r.getErr
	}
	index, ok := r.byUser[userID]
	if !ok {
		return userchats.UserChats{}, chaterrors.ErrNotFound
	}
	out := *index
	out.Chats = append([]userchats.ChatSummary(nil), index.Chats...)
	return out, nil
}
