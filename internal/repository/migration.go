package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/gorm"
)

// InitSchema creates the Postgres tables and indexes for chats and user_chats.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&chatRow{}, &userChatsRow{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Containment lookups in the summary upsert use this index.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_user_chats_chats ON user_chats USING GIN (chats jsonb_path_ops)`).Error; err != nil {
		return fmt.Errorf("failed to create index idx_user_chats_chats: %w", err)
	}
	return nil
}

// DropSchema removes every table owned by this service.
func DropSchema(db *gorm.DB) error {
	return db.Migrator().DropTable(&chatRow{}, &userChatsRow{})
}

// PostgresTables lists the tables InitSchema manages.
func PostgresTables() []string {
	return []string{chatRow{}.TableName(), userChatsRow{}.TableName()}
}

// EnsureMongoIndexes creates the indexes the repositories rely on. The unique
// userId index is what makes the summary upsert safe under concurrency. When
// existing data already holds duplicate userIds the error names them.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UserChatsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userId_unique"),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if ids, findErr := FindDuplicateUserChats(ctx, db); findErr == nil && len(ids) > 0 {
				return duplicateIndexError(ids, err)
			}
		}
		return fmt.Errorf("failed to create userchats index: %w", err)
	}

	_, err = db.Collection(ChatsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "_id", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetName("id_userId"),
	})
	if err != nil {
		return fmt.Errorf("failed to create chats index: %w", err)
	}
	return nil
}

// DropMongoCollections removes every collection owned by this service.
func DropMongoCollections(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{ChatsCollection, UserChatsCollection} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
	}
	return nil
}
