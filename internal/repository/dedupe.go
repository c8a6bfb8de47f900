package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// duplicateUserIDsPipeline groups userchats by owner and keeps owners with
// more than one index document.
func duplicateUserIDsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// FindDuplicateUserChats lists userIds that own more than one userchats document.
func FindDuplicateUserChats(ctx context.Context, db *mongo.Database) ([]string, error) {
	cur, err := db.Collection(UserChatsCollection).Aggregate(ctx, duplicateUserIDsPipeline())
	if err != nil {
		return nil, fmt.Errorf("failed to group userchats: %w", err)
	}

	var groups []struct {
		UserID string `bson:"_id"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to read duplicate userchats: %w", err)
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.UserID)
	}
	return ids, nil
}

// duplicateIndexError explains a failed unique index build on userchats.
func duplicateIndexError(userIDs []string, cause error) error {
	return fmt.Errorf(
		"failed to create userchats index: %d userId(s) own several userchats documents (%s); run `migrate dedupe` to merge them: %w",
		len(userIDs), strings.Join(userIDs, ", "), cause,
	)
}

// mergeUserChatsDocs folds docs into the first one. Summaries keep their
// order and a chat listed more than once is kept at its first position.
func mergeUserChatsDocs(docs []userChatsDoc) (userChatsDoc, []bson.ObjectID) {
	if len(docs) == 0 {
		return userChatsDoc{}, nil
	}

	keep := docs[0]
	seen := make(map[bson.ObjectID]bool)
	merged := make([]summaryDoc, 0, len(keep.Chats))
	var drop []bson.ObjectID

	for i, d := range docs {
		if i > 0 {
			drop = append(drop, d.ID)
			if d.UpdatedAt.After(keep.UpdatedAt) {
				keep.UpdatedAt = d.UpdatedAt
			}
		}
		for _, s := range d.Chats {
			if seen[s.ChatID] {
				continue
			}
			seen[s.ChatID] = true
			merged = append(merged, s)
		}
	}
	keep.Chats = merged
	return keep, drop
}

// MergeDuplicateUserChats collapses every user's userchats documents into the
// oldest one and deletes the rest. It returns how many users were merged.
func MergeDuplicateUserChats(ctx context.Context, db *mongo.Database) (int, error) {
	userIDs, err := FindDuplicateUserChats(ctx, db)
	if err != nil {
		return 0, err
	}

	coll := db.Collection(UserChatsCollection)
	for _, userID := range userIDs {
		cur, err := coll.Find(ctx, bson.M{"userId": userID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
		if err != nil {
			return 0, fmt.Errorf("failed to load userchats for %s: %w", userID, err)
		}
		var docs []userChatsDoc
		if err := cur.All(ctx, &docs); err != nil {
			return 0, fmt.Errorf("failed to decode userchats for %s: %w", userID, err)
		}

		keep, drop := mergeUserChatsDocs(docs)
		if len(drop) == 0 {
			continue
		}

		_, err = coll.UpdateOne(ctx, bson.M{"_id": keep.ID}, bson.M{
			"$set": bson.M{"chats": keep.Chats, "updatedAt": keep.UpdatedAt},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to merge userchats for %s: %w", userID, err)
		}
		if _, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": drop}}); err != nil {
			return 0, fmt.Errorf("failed to delete duplicate userchats for %s: %w", userID, err)
		}
	}
	return len(userIDs), nil
}
