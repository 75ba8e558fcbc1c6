package chat

// SendMessageRequest is the payload for POST /v1/conversations/:id/messages.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
