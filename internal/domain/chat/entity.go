package chat

import (
	"time"
	"unicode/utf8"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// TitleLength is the number of characters of the opening question kept as a chat title.
const TitleLength = 40

// Part is one content fragment of a turn.
type Part struct {
	Text string `json:"text" bson:"text"`
}

// Turn is a single entry of a chat history.
type Turn struct {
	Role  Role   `json:"role" bson:"role"`
	Parts []Part `json:"parts" bson:"parts"`
	Img   string `json:"img,omitempty" bson:"img,omitempty"`
}

// Chat is one conversation owned by a user. History is append-only.
type Chat struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	History   []Turn    `json:"history"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateResult is the acknowledgement returned after appending to a chat.
type UpdateResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// NewUserTurn builds a user turn. img is attached only when non-empty.
func NewUserTurn(text, img string) Turn {
	return Turn{
		Role:  RoleUser,
		Parts: []Part{{Text: text}},
		Img:   img,
	}
}

// NewModelTurn builds a model turn. Model turns never carry an image.
func NewModelTurn(text string) Turn {
	return Turn{
		Role:  RoleModel,
		Parts: []Part{{Text: text}},
	}
}

// New returns a chat for userID opened with a single user turn.
func New(userID, text string) Chat {
	return Chat{
		UserID:  userID,
		History: []Turn{NewUserTurn(text, "")},
	}
}

// Truncate returns the first n characters of s, untouched otherwise.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Title derives the immutable summary title for a chat opened with text.
func Title(text string) string {
	return Truncate(text, TitleLength)
}
