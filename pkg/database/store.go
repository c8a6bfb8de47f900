package database

import (
	"context"
	"errors"
	"fmt"

	"chat-history/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// Store holds the open connection for whichever driver is configured.
type Store struct {
	Driver  string
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	SQL     *gorm.DB
}

func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  cfg.DBDriver,
			Mongo:   client,
			MongoDB: client.Database(cfg.MongoDatabase),
		}, nil
	case config.DriverPostgres:
		db, err := ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: cfg.DBDriver, SQL: db}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("database not initialized")
	}
	switch {
	case s.Mongo != nil:
		return s.Mongo.Ping(ctx, nil)
	case s.SQL != nil:
		return pingPostgres(ctx, s.SQL)
	default:
		return errors.New("database not initialized")
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	switch {
	case s.Mongo != nil:
		return s.Mongo.Disconnect(ctx)
	case s.SQL != nil:
		return closePostgres(s.SQL)
	}
	return nil
}
