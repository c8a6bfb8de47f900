package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-history/internal/domain/userchats"
	chaterrors "chat-history/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type summaryDoc struct {
	ChatID bson.ObjectID `bson:"_id"`
	Title  string        `bson:"title"`
}

type userChatsDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	UserID    string        `bson:"userId"`
	Chats     []summaryDoc  `bson:"chats"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d userChatsDoc) toDomain() userchats.UserChats {
	chats := make([]userchats.ChatSummary, 0, len(d.Chats))
	for _, s := range d.Chats {
		chats = append(chats, userchats.ChatSummary{ChatID: s.ChatID.Hex(), Title: s.Title})
	}
	return userchats.UserChats{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Chats:     chats,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoUserChatsRepository struct {
	coll *mongo.Collection
	opts StoreOptions
}

func NewMongoUserChatsRepository(db *mongo.Database, opts StoreOptions) UserChatsRepository {
	return &MongoUserChatsRepository{coll: db.Collection(UserChatsCollection), opts: opts}
}

func (r *MongoUserChatsRepository) AddSummary(ctx context.Context, userID string, s userchats.ChatSummary) error {
	chatOID, err := bson.ObjectIDFromHex(s.ChatID)
	if err != nil {
		return chaterrors.ErrInvalidInput
	}

	filter := addSummaryFilter(userID, chatOID)
	summary := summaryDoc{ChatID: chatOID, Title: s.Title}

	return withRetry(ctx, r.opts, isTransientMongo, func(ctx context.Context) error {
		now := time.Now().UTC()
		_, err := r.coll.UpdateOne(ctx, filter, addSummaryUpdate(summary, now, true), options.UpdateOne().SetUpsert(true))
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to upsert user chats: %w", err)
		}

		// Either a concurrent request created the index first, or the chat is
		// already indexed. A plain push settles both.
		if _, err := r.coll.UpdateOne(ctx, filter, addSummaryUpdate(summary, now, false)); err != nil {
			return fmt.Errorf("failed to push user chat: %w", err)
		}
		return nil
	})
}

// addSummaryFilter matches the user's index only while it does not list the
// chat yet, so a replayed push is a no-op.
func addSummaryFilter(userID string, chatOID bson.ObjectID) bson.M {
	return bson.M{"userId": userID, "chats._id": bson.M{"$ne": chatOID}}
}

func addSummaryUpdate(s summaryDoc, now time.Time, upsert bool) bson.M {
	update := bson.M{
		"$push": bson.M{"chats": s},
		"$set":  bson.M{"updatedAt": now},
	}
	if upsert {
		update["$setOnInsert"] = bson.M{"createdAt": now}
	}
	return update
}

func (r *MongoUserChatsRepository) GetByUserID(ctx context.Context, userID string) (userchats.UserChats, error) {
	var doc userChatsDoc
	err := withRetry(ctx, r.opts, isTransientMongo, func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return userchats.UserChats{}, chaterrors.ErrNotFound
		}
		return userchats.UserChats{}, fmt.Errorf("failed to find user chats: %w", err)
	}
	return doc.toDomain(), nil
}
