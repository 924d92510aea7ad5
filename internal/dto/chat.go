package dto

// ChatMessage is one turn of the tutor conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse carries the tutor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
