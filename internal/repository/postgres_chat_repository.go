package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chat-history/internal/domain/chat"
	chaterrors "chat-history/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// chatRow represents chats
type chatRow struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey"`
	UserID    string                         `gorm:"not null;index"`
	History   datatypes.JSONSlice[chat.Turn] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time                      `gorm:"not null"`
	UpdatedAt time.Time                      `gorm:"not null"`
}

func (chatRow) TableName() string {
	return "chats"
}

func (r chatRow) toDomain() chat.Chat {
	history := []chat.Turn(r.History)
	if history == nil {
		history = []chat.Turn{}
	}
	return chat.Chat{
		ID:        r.ID.String(),
		UserID:    r.UserID,
		History:   history,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type PostgresChatRepository struct {
	db   *gorm.DB
	opts StoreOptions
}

func NewPostgresChatRepository(db *gorm.DB, opts StoreOptions) ChatRepository {
	return &PostgresChatRepository{db: db, opts: opts}
}

func (r *PostgresChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	now := time.Now().UTC()
	row := chatRow{
		ID:        uuid.New(),
		UserID:    c.UserID,
		History:   datatypes.NewJSONSlice(c.History),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := withTimeout(ctx, r.opts)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return chaterrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert chat: %w", err)
	}

	c.ID = row.ID.String()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *PostgresChatRepository) GetByIDForUser(ctx context.Context, id, userID string) (chat.Chat, error) {
	chatID, err := uuid.Parse(id)
	if err != nil {
		return chat.Chat{}, chaterrors.ErrNotFound
	}

	var row chatRow
	err = withRetry(ctx, r.opts, isTransientSQL, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", chatID, userID).
			First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, chaterrors.ErrNotFound
		}
		return chat.Chat{}, fmt.Errorf("failed to find chat: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresChatRepository) AppendTurns(ctx context.Context, id, userID string, turns []chat.Turn) (chat.UpdateResult, error) {
	chatID, err := uuid.Parse(id)
	if err != nil {
		return chat.UpdateResult{Acknowledged: true}, chaterrors.ErrNotFound
	}

	payload, err := json.Marshal(turns)
	if err != nil {
		return chat.UpdateResult{}, fmt.Errorf("failed to encode turns: %w", err)
	}

	ctx, cancel := withTimeout(ctx, r.opts)
	defer cancel()

	res := appendTurnsQuery(r.db.WithContext(ctx), chatID, userID, payload, time.Now().UTC())
	if res.Error != nil {
		return chat.UpdateResult{}, fmt.Errorf("failed to append turns: %w", res.Error)
	}

	result := chat.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}
	if res.RowsAffected == 0 {
		return result, chaterrors.ErrNotFound
	}
	return result, nil
}

// appendTurnsQuery concatenates the encoded turns onto history in a single
// UPDATE, so concurrent appends serialise on the row lock.
func appendTurnsQuery(tx *gorm.DB, chatID uuid.UUID, userID string, payload []byte, now time.Time) *gorm.DB {
	return tx.Model(&chatRow{}).
		Where("id = ? AND user_id = ?", chatID, userID).
		Updates(map[string]interface{}{
			"history":    gorm.Expr("history || ?::jsonb", string(payload)),
			"updated_at": now,
		})
}
