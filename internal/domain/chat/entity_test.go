package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "hi", 40, "hi"},
		{"exact limit", strings.Repeat("a", 40), 40, strings.Repeat("a", 40)},
		{"longer than limit", "Hello world, how are you today please respond fast", 40, "Hello world, how are you today please re"},
		{"keeps surrounding whitespace", "  padded  ", 4, "  pa"},
		{"counts characters not bytes", "héllo wörld", 5, "héllo"},
		{"empty", "", 40, ""},
		{"zero limit", "abc", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(tc.in, tc.n))
		})
	}
}

func TestTitleUsesFortyCharacters(t *testing.T) {
	title := Title(strings.Repeat("x", 100))
	assert.Len(t, title, TitleLength)
}

func TestNewOpensWithSingleUserTurn(t *testing.T) {
	c := New("u1", "Hello")

	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, []Turn{{Role: RoleUser, Parts: []Part{{Text: "Hello"}}}}, c.History)
}

func TestTurnConstructors(t *testing.T) {
	user := NewUserTurn("what is this?", "https://ik.imagekit.io/demo/cat.png")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "https://ik.imagekit.io/demo/cat.png", user.Img)

	plain := NewUserTurn("no image", "")
	assert.Empty(t, plain.Img)

	model := NewModelTurn("a cat")
	assert.Equal(t, RoleModel, model.Role)
	assert.Empty(t, model.Img)
	assert.Equal(t, []Part{{Text: "a cat"}}, model.Parts)
}
