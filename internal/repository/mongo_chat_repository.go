package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-history/internal/domain/chat"
	chaterrors "chat-history/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	ChatsCollection     = "chats"
	UserChatsCollection = "userchats"
)

type chatDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	UserID    string        `bson:"userId"`
	History   []chat.Turn   `bson:"history"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d chatDoc) toDomain() chat.Chat {
	history := d.History
	if history == nil {
		history = []chat.Turn{}
	}
	return chat.Chat{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		History:   history,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoChatRepository struct {
	coll *mongo.Collection
	opts StoreOptions
}

func NewMongoChatRepository(db *mongo.Database, opts StoreOptions) ChatRepository {
	return &MongoChatRepository{coll: db.Collection(ChatsCollection), opts: opts}
}

func (r *MongoChatRepository) Create(ctx context.Context, c *chat.Chat) error {
	now := time.Now().UTC()
	doc := chatDoc{
		ID:        bson.NewObjectID(),
		UserID:    c.UserID,
		History:   c.History,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := withTimeout(ctx, r.opts)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return chaterrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert chat: %w", err)
	}

	c.ID = doc.ID.Hex()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *MongoChatRepository) GetByIDForUser(ctx context.Context, id, userID string) (chat.Chat, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return chat.Chat{}, chaterrors.ErrNotFound
	}

	var doc chatDoc
	err = withRetry(ctx, r.opts, isTransientMongo, func(ctx context.Context) error {
		return r.coll.FindOne(ctx, chatOwnerFilter(oid, userID)).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return chat.Chat{}, chaterrors.ErrNotFound
		}
		return chat.Chat{}, fmt.Errorf("failed to find chat: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoChatRepository) AppendTurns(ctx context.Context, id, userID string, turns []chat.Turn) (chat.UpdateResult, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return chat.UpdateResult{Acknowledged: true}, chaterrors.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.opts)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, chatOwnerFilter(oid, userID), appendTurnsUpdate(turns, time.Now().UTC()))
	if err != nil {
		return chat.UpdateResult{}, fmt.Errorf("failed to append turns: %w", err)
	}

	result := toUpdateResult(res)
	if result.MatchedCount == 0 {
		return result, chaterrors.ErrNotFound
	}
	return result, nil
}

// chatOwnerFilter scopes reads and writes to chats owned by userID.
func chatOwnerFilter(oid bson.ObjectID, userID string) bson.M {
	return bson.M{"_id": oid, "userId": userID}
}

// appendTurnsUpdate pushes every turn in one operation so they land adjacent.
func appendTurnsUpdate(turns []chat.Turn, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"history": bson.M{"$each": turns}},
		"$set":  bson.M{"updatedAt": now},
	}
}

func toUpdateResult(res *mongo.UpdateResult) chat.UpdateResult {
	result := chat.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		result.UpsertedID = oid.Hex()
	}
	return result
}

func isTransientMongo(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
