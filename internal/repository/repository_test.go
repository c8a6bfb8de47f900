package repository

import (
	"testing"
	"time"

	"chat-history/internal/domain/chat"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/datatypes"
)

func TestChatDocToDomain(t *testing.T) {
	oid := bson.NewObjectID()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := chatDoc{ID: oid, UserID: "u1", CreatedAt: created, UpdatedAt: created}.toDomain()

	assert.Equal(t, oid.Hex(), got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.NotNil(t, got.History)
	assert.Empty(t, got.History)
	assert.Equal(t, created, got.CreatedAt)
}

func TestUserChatsDocToDomainKeepsOrder(t *testing.T) {
	first, second := bson.NewObjectID(), bson.NewObjectID()
	doc := userChatsDoc{
		ID:     bson.NewObjectID(),
		UserID: "u2",
		Chats: []summaryDoc{
			{ChatID: first, Title: "first"},
			{ChatID: second, Title: "second"},
		},
	}

	got := doc.toDomain()

	assert.Len(t, got.Chats, 2)
	assert.Equal(t, first.Hex(), got.Chats[0].ChatID)
	assert.Equal(t, "first", got.Chats[0].Title)
	assert.Equal(t, second.Hex(), got.Chats[1].ChatID)
}

func TestToUpdateResult(t *testing.T) {
	got := toUpdateResult(&mongo.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1})

	assert.Equal(t, chat.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, got)
}

func TestChatRowToDomain(t *testing.T) {
	id := uuid.New()
	row := chatRow{
		ID:      id,
		UserID:  "u1",
		History: datatypes.NewJSONSlice([]chat.Turn{chat.NewUserTurn("hi", "")}),
	}

	got := row.toDomain()

	assert.Equal(t, id.String(), got.ID)
	assert.Len(t, got.History, 1)
	assert.Equal(t, chat.RoleUser, got.History[0].Role)
}

func TestUserChatsRowToDomainEmpty(t *testing.T) {
	got := userChatsRow{ID: uuid.New(), UserID: "u1"}.toDomain()

	assert.NotNil(t, got.Chats)
	assert.Empty(t, got.Chats)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransientSQL(nil))
	assert.False(t, isTransientSQL(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransientMongo(nil))
	assert.False(t, isTransientMongo(mongo.ErrNoDocuments))
}

func TestPostgresTables(t *testing.T) {
	assert.Equal(t, []string{"chats", "user_chats"}, PostgresTables())
}
