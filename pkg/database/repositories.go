package database

import (
	"context"
	"errors"
	"fmt"

	"chat-history/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Repositories struct {
	Chats     repository.ChatRepository
	UserChats repository.UserChatsRepository
}

// NewRepositories builds the repositories backed by whichever connection s holds.
func NewRepositories(s *Store, opts repository.StoreOptions) (Repositories, error) {
	switch {
	case s == nil:
		return Repositories{}, errors.New("database not initialized")
	case s.MongoDB != nil:
		return Repositories{
			Chats:     repository.NewMongoChatRepository(s.MongoDB, opts),
			UserChats: repository.NewMongoUserChatsRepository(s.MongoDB, opts),
		}, nil
	case s.SQL != nil:
		return Repositories{
			Chats:     repository.NewPostgresChatRepository(s.SQL, opts),
			UserChats: repository.NewPostgresUserChatsRepository(s.SQL, opts),
		}, nil
	default:
		return Repositories{}, errors.New("database not initialized")
	}
}

// Migrate creates the indexes (Mongo) or tables (Postgres) the repositories need.
func (s *Store) Migrate(ctx context.Context) error {
	switch {
	case s.MongoDB != nil:
		return repository.EnsureMongoIndexes(ctx, s.MongoDB)
	case s.SQL != nil:
		return repository.InitSchema(s.SQL.WithContext(ctx))
	}
	return errors.New("database not initialized")
}

// Drop removes every collection or table owned by this service.
func (s *Store) Drop(ctx context.Context) error {
	switch {
	case s.MongoDB != nil:
		return repository.DropMongoCollections(ctx, s.MongoDB)
	case s.SQL != nil:
		return repository.DropSchema(s.SQL.WithContext(ctx))
	}
	return errors.New("database not initialized")
}

// Dedupe merges duplicate userchats documents left by data written before the
// unique userId index existed. Postgres has enforced the constraint since the
// table was created, so there is nothing to merge there.
func (s *Store) Dedupe(ctx context.Context) (int, error) {
	switch {
	case s.MongoDB != nil:
		return repository.MergeDuplicateUserChats(ctx, s.MongoDB)
	case s.SQL != nil:
		return 0, nil
	}
	return 0, errors.New("database not initialized")
}

type CollectionStatus struct {
	Name   string
	Exists bool
	Count  int64
}

// Status reports each owned collection or table and its document count.
func (s *Store) Status(ctx context.Context) ([]CollectionStatus, error) {
	switch {
	case s.MongoDB != nil:
		names, err := s.MongoDB.ListCollectionNames(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("list collections: %w", err)
		}
		existing := make(map[string]bool, len(names))
		for _, n := range names {
			existing[n] = true
		}
		var out []CollectionStatus
		for _, name := range []string{repository.ChatsCollection, repository.UserChatsCollection} {
			st := CollectionStatus{Name: name, Exists: existing[name]}
			if st.Exists {
				count, err := s.MongoDB.Collection(name).EstimatedDocumentCount(ctx)
				if err != nil {
					return nil, fmt.Errorf("count %s: %w", name, err)
				}
				st.Count = count
			}
			out = append(out, st)
		}
		return out, nil
	case s.SQL != nil:
		var out []CollectionStatus
		for _, table := range repository.PostgresTables() {
			st := CollectionStatus{Name: table, Exists: s.SQL.WithContext(ctx).Migrator().HasTable(table)}
			if st.Exists {
				if err := s.SQL.WithContext(ctx).Table(table).Count(&st.Count).Error; err != nil {
					return nil, fmt.Errorf("count %s: %w", table, err)
				}
			}
			out = append(out, st)
		}
		return out, nil
	}
	return nil, errors.New("database not initialized")
}
