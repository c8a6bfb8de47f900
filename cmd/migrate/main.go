package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chat-history/config"
	"chat-history/internal/repository"
	"chat-history/pkg/database"
)

const usage = `
Chat History - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create indexes (mongo) or tables (postgres)
  down        Drop every collection or table owned by the service (DANGEROUS)
  status      Show database connection status and collection counts
  seed-dev    Seed sample chats for a development user
  reset       Drop and re-create everything (DANGEROUS)
  dedupe      Merge duplicate userchats documents so "up" can build the unique userId index

Flags:
  -user string   User id to seed chats for (default "test-user-id")
  -chats int     Number of chats to seed (default 3)

The driver is picked by DB_DRIVER (mongo or postgres).

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go dedupe && go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev -user alice -chats 5
  DB_DRIVER=postgres go run cmd/migrate/main.go status
`

func main() {
	userID := flag.String("user", "test-user-id", "User id to seed chats for")
	chats := flag.Int("chats", 3, "Number of chats to seed")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer store.Close(context.Background())

	switch command {
	case "up":
		runMigrationsUp(ctx, store)
	case "down":
		runMigrationsDown(ctx, store)
	case "status":
		showStatus(ctx, store)
	case "seed-dev":
		runSeedDevelopment(ctx, cfg, store, *userID, *chats)
	case "reset":
		runReset(ctx, store)
	case "dedupe":
		runDedupe(ctx, store)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(ctx context.Context, store *database.Store) {
	log.Printf("🚀 Running migrations UP (%s)...", store.Driver)

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func runMigrationsDown(ctx context.Context, store *database.Store) {
	log.Println("⬇️  Dropping collections...")

	if err := store.Drop(ctx); err != nil {
		log.Fatalf("❌ Rollback failed: %v", err)
	}

	log.Println("✅ Rollback completed successfully!")
}

func showStatus(ctx context.Context, store *database.Store) {
	log.Println("🔍 Checking database status...")

	if err := store.Ping(ctx); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Printf("✅ Database connection (%s): OK", store.Driver)

	statuses, err := store.Status(ctx)
	if err != nil {
		log.Fatalf("❌ Status check failed: %v", err)
	}
	for _, st := range statuses {
		if st.Exists {
			log.Printf("✅ %-20s exists (%d rows)", st.Name, st.Count)
		} else {
			log.Printf("❌ %-20s does not exist", st.Name)
		}
	}
}

func runSeedDevelopment(ctx context.Context, cfg *config.Config, store *database.Store, userID string, chats int) {
	log.Println("🌱 Seeding database (development mode)...")

	repos, err := database.NewRepositories(store, repository.StoreOptions{
		Timeout: cfg.StoreTimeout,
		Retries: cfg.StoreRetries,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	seedCfg := database.DefaultSeedConfig()
	seedCfg.UserID = userID
	seedCfg.ChatsPerUser = chats

	result, err := database.Seed(ctx, repos, seedCfg)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - User: %s", result.UserID)
	log.Printf("   - Chats: %d", len(result.ChatIDs))
	log.Printf("   - Turns: %d", result.Turns)
	log.Println("✅ Development seeding completed!")
}

func runReset(ctx context.Context, store *database.Store) {
	log.Println("⚠️  WARNING: This will DROP all collections and re-run migrations!")

	if err := store.Drop(ctx); err != nil {
		log.Fatalf("❌ Failed to drop: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Database reset completed!")
}

func runDedupe(ctx context.Context, store *database.Store) {
	log.Println("🧹 Merging duplicate userchats documents...")

	merged, err := store.Dedupe(ctx)
	if err != nil {
		log.Fatalf("❌ Dedupe failed: %v", err)
	}

	if merged == 0 {
		log.Println("✅ No duplicate userchats found")
		return
	}
	log.Printf("✅ Merged userchats for %d user(s). Run \"up\" to build the unique index.", merged)
}
