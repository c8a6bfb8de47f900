package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chat-history/internal/domain/userchats"
	chaterrors "chat-history/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// userChatsRow represents user_chats
type userChatsRow struct {
	ID        uuid.UUID                                  `gorm:"type:uuid;primaryKey"`
	UserID    string                                     `gorm:"not null;uniqueIndex"`
	Chats     datatypes.JSONSlice[userchats.ChatSummary] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time                                  `gorm:"not null"`
	UpdatedAt time.Time                                  `gorm:"not null"`
}

func (userChatsRow) TableName() string {
	return "user_chats"
}

func (r userChatsRow) toDomain() userchats.UserChats {
	chats := []userchats.ChatSummary(r.Chats)
	if chats == nil {
		chats = []userchats.ChatSummary{}
	}
	return userchats.UserChats{
		ID:        r.ID.String(),
		UserID:    r.UserID,
		Chats:     chats,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// upsertSummarySQL creates the index row or appends to it. The WHERE clause
// skips summaries that are already present so retries stay idempotent.
const upsertSummarySQL = `
INSERT INTO user_chats (id, user_id, chats, created_at, updated_at)
VALUES (?, ?, ?::jsonb, ?, ?)
ON CONFLICT (user_id) DO UPDATE
SET chats = user_chats.chats || EXCLUDED.chats,
	updated_at = EXCLUDED.updated_at
WHERE NOT (user_chats.chats @> EXCLUDED.chats)`

type PostgresUserChatsRepository struct {
	db   *gorm.DB
	opts StoreOptions
}

func NewPostgresUserChatsRepository(db *gorm.DB, opts StoreOptions) UserChatsRepository {
	return &PostgresUserChatsRepository{db: db, opts: opts}
}

func (r *PostgresUserChatsRepository) AddSummary(ctx context.Context, userID string, s userchats.ChatSummary) error {
	payload, err := json.Marshal([]userchats.ChatSummary{s})
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	return withRetry(ctx, r.opts, isTransientSQL, func(ctx context.Context) error {
		now := time.Now().UTC()
		if err := upsertSummaryQuery(r.db.WithContext(ctx), userID, payload, now).Error; err != nil {
			return fmt.Errorf("failed to upsert user chats: %w", err)
		}
		return nil
	})
}

func upsertSummaryQuery(tx *gorm.DB, userID string, payload []byte, now time.Time) *gorm.DB {
	return tx.Exec(upsertSummarySQL, uuid.New(), userID, string(payload), now, now)
}

func (r *PostgresUserChatsRepository) GetByUserID(ctx context.Context, userID string) (userchats.UserChats, error) {
	var row userChatsRow
	err := withRetry(ctx, r.opts, isTransientSQL, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userchats.UserChats{}, chaterrors.ErrNotFound
		}
		return userchats.UserChats{}, fmt.Errorf("failed to find user chats: %w", err)
	}
	return row.toDomain(), nil
}
