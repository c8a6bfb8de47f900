package database

import (
	"context"
	"fmt"
	"log"

	"chat-history/internal/domain/chat"
	"chat-history/internal/domain/userchats"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	UserID        string
	ChatsPerUser  int
	TurnsPerChat  int
	SampleImgPath string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		UserID:        "test-user-id",
		ChatsPerUser:  3,
		TurnsPerChat:  2,
		SampleImgPath: "/samples/cat.png",
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	UserID  string
	ChatIDs []string
	Turns   int
}

var sampleExchanges = []struct {
	question string
	answer   string
}{
	{"What is the capital of France?", "The capital of France is Paris."},
	{"Explain the difference between a goroutine and a thread.", "Goroutines are lightweight and scheduled by the Go runtime onto OS threads."},
	{"Describe this picture for me please, in as much detail as you can manage.", "It shows a cat sitting on a windowsill in the afternoon sun."},
	{"How do I reverse a slice in Go?", "Swap elements from both ends moving toward the middle, or use slices.Reverse."},
}

// Seed creates sample chats for one user through the repositories, keeping the
// index in step with the chats it lists.
func Seed(ctx context.Context, repos Repositories, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	result := &SeedResult{UserID: cfg.UserID}
	log.Println("Starting database seeding...")

	for i := 0; i < cfg.ChatsPerUser; i++ {
		first := sampleExchanges[i%len(sampleExchanges)]

		c := chat.New(cfg.UserID, first.question)
		if err := repos.Chats.Create(ctx, &c); err != nil {
			return result, fmt.Errorf("seed chat %d: %w", i, err)
		}

		summary := userchats.ChatSummary{ChatID: c.ID, Title: chat.Title(first.question)}
		if err := repos.UserChats.AddSummary(ctx, cfg.UserID, summary); err != nil {
			return result, fmt.Errorf("index seeded chat %s: %w", c.ID, err)
		}

		turns := []chat.Turn{chat.NewModelTurn(first.answer)}
		for j := 1; j < cfg.TurnsPerChat; j++ {
			next := sampleExchanges[(i+j)%len(sampleExchanges)]
			img := ""
			if j == 1 && i == 0 {
				img = cfg.SampleImgPath
			}
			turns = append(turns, chat.NewUserTurn(next.question, img), chat.NewModelTurn(next.answer))
		}
		if _, err := repos.Chats.AppendTurns(ctx, c.ID, cfg.UserID, turns); err != nil {
			return result, fmt.Errorf("seed history for %s: %w", c.ID, err)
		}

		result.ChatIDs = append(result.ChatIDs, c.ID)
		result.Turns += 1 + len(turns)
	}

	log.Printf("Seeded %d chats for %s", len(result.ChatIDs), cfg.UserID)
	return result, nil
}
