package httpdto

// CreateChatRequest is used for POST /api/chats. The key must be present;
// an empty string is a valid opening message.
type CreateChatRequest struct {
	Text *string `json:"text" binding:"required"`
}

// AppendTurnRequest is used for PUT /api/chats/:id. An empty answer is still
// stored so the question that produced it is never lost.
type AppendTurnRequest struct {
	Question string  `json:"question,omitempty"`
	Answer   *string `json:"answer" binding:"required"`
	Img      string  `json:"img,omitempty"`
}
