package conversation

// CreateConversationRequest is the payload for POST /v1/conversations.
// Title is optional; the server falls back to the default title.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// RenameConversationRequest is the payload for PATCH /v1/conversations/:id.
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}
