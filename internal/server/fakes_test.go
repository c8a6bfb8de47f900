package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chat-history/internal/domain/chat"
	"chat-history/internal/domain/userchats"
	chaterrors "chat-history/pkg/errors"
)

type fakeChatRepo struct {
	mu     sync.Mutex
	seq    int
	chats  map[string]chat.Chat
	broken bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: map[string]chat.Chat{}}
}

func (r *fakeChatRepo) Create(ctx context.Context, c *chat.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.broken {
		return errors.New("connection refused")
	}
	r.seq++
	c.ID = fmt.Sprintf("65f000000000000000000%03d", r.seq)
	r.chats[c.ID] = *c
	return nil
}

func (r *fakeChatRepo) GetByIDForUser(ctx context.Context, id, userID string) (chat.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.broken {
		return chat.Chat{}, errors.New("connection refused")
	}
	c, ok := r.chats[id]
	if !ok || c.UserID != userID {
		return chat.Chat{}, chaterrors.ErrNotFound
	}
	return c, nil
}

func (r *fakeChatRepo) AppendTurns(ctx context.Context, id, userID string, turns []chat.Turn) (chat.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok || c.UserID != userID {
		return chat.UpdateResult{Acknowledged: true}, chaterrors.ErrNotFound
	}
	c.History = append(c.History, turns...)
	r.chats[id] = c
	return chat.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeUserChatsRepo struct {
	mu     sync.Mutex
	byUser map[string][]userchats.ChatSummary
}

func newFakeUserChatsRepo() *fakeUserChatsRepo {
	return &fakeUserChatsRepo{byUser: map[string][]userchats.ChatSummary{}}
}

func (r *fakeUserChatsRepo) AddSummary(ctx context.Context, userID string, s userchats.ChatSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = append(r.byUser[userID], s)
	return nil
}

func (r *fakeUserChatsRepo) GetByUserID(ctx context.Context, userID string) (userchats.UserChats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chats, ok := r.byUser[userID]
	if !ok {
		return userchats.UserChats{}, chaterrors.ErrNotFound
	}
	return userchats.UserChats{UserID: userID, Chats: chats}, nil
}

type fakeHealth struct {
	err error
}

func (h fakeHealth) Ping(ctx context.Context) error {
	return h.err
}
