package services

import (
	"context"
	"errors"
	"fmt"

	"chat-history/internal/domain/chat"
	"chat-history/internal/domain/userchats"
	"chat-history/internal/metrics"
	"chat-history/internal/repository"
	chaterrors "chat-history/pkg/errors"
	"chat-history/pkg/logger"

	"go.uber.org/zap"
)

type ChatService struct {
	chats  repository.ChatRepository
	index  repository.UserChatsRepository
	logger *logger.Logger
}

func NewChatService(chats repository.ChatRepository, index repository.UserChatsRepository, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatService{chats: chats, index: index, logger: l}
}

// AppendInput carries one exchange. An empty Question appends only the model
// answer, which may itself be empty; Img is attached to the question turn
// when both are set.
type AppendInput struct {
	Question string
	Answer   string
	Img      string
}

// CreateChat opens a chat with text as its first user turn and indexes it
// for userID. Empty text is allowed and yields an empty title. The chat id is returned whether or not the index existed.
func (s *ChatService) CreateChat(ctx context.Context, userID, text string) (string, error) {
	if userID == "" {
		return "", chaterrors.ErrUnauthorized
	}
	c := chat.New(userID, text)
	if err := s.chats.Create(ctx, &c); err != nil {
		metrics.RecordChatCreated("error")
		return "", fmt.Errorf("create chat: %w", err)
	}

	summary := userchats.ChatSummary{ChatID: c.ID, Title: chat.Title(text)}
	if err := s.index.AddSummary(ctx, userID, summary); err != nil {
		metrics.RecordChatCreated("error")
		// No rollback: the chat stays stored but unlisted.
		s.logger.WithContext(ctx).Error("chat saved but not indexed",
			zap.String("chat_id", c.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("index chat %s: %w", c.ID, err)
	}

	metrics.RecordChatCreated("ok")
	return c.ID, nil
}

// AppendTurn pushes an optional question turn and the model answer onto the
// history of the chat owned by userID.
func (s *ChatService) AppendTurn(ctx context.Context, chatID, userID string, in AppendInput) (chat.UpdateResult, error) {
	if userID == "" {
		return chat.UpdateResult{}, chaterrors.ErrUnauthorized
	}
	if chatID == "" {
		return chat.UpdateResult{}, chaterrors.ErrInvalidInput
	}

	turns := BuildTurns(in)
	result, err := s.chats.AppendTurns(ctx, chatID, userID, turns)
	if err != nil {
		return result, fmt.Errorf("append to chat %s: %w", chatID, err)
	}

	for _, t := range turns {
		metrics.RecordTurnAppended(string(t.Role))
	}
	return result, nil
}

// BuildTurns returns the turns an exchange appends, in history order.
func BuildTurns(in AppendInput) []chat.Turn {
	turns := make([]chat.Turn, 0, 2)
	if in.Question != "" {
		turns = append(turns, chat.NewUserTurn(in.Question, in.Img))
	}
	return append(turns, chat.NewModelTurn(in.Answer))
}

// ListUserChatSummaries returns the user's chat summaries in creation order.
// A user without chats gets an empty slice.
func (s *ChatService) ListUserChatSummaries(ctx context.Context, userID string) ([]userchats.ChatSummary, error) {
	if userID == "" {
		return nil, chaterrors.ErrUnauthorized
	}

	index, err := s.index.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, chaterrors.ErrNotFound) {
			return []userchats.ChatSummary{}, nil
		}
		return nil, fmt.Errorf("list user chats: %w", err)
	}
	if index.Chats == nil {
		return []userchats.ChatSummary{}, nil
	}
	return index.Chats, nil
}

// GetChat returns the chat when it exists and belongs to userID, ErrNotFound otherwise.
func (s *ChatService) GetChat(ctx context.Context, chatID, userID string) (chat.Chat, error) {
	if userID == "" {
		return chat.Chat{}, chaterrors.ErrUnauthorized
	}
	if chatID == "" {
		return chat.Chat{}, chaterrors.ErrNotFound
	}

	c, err := s.chats.GetByIDForUser(ctx, chatID, userID)
	if err != nil {
		return chat.Chat{}, fmt.Errorf("get chat %s: %w", chatID, err)
	}
	return c, nil
}
