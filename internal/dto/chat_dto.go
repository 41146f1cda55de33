package dto

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user bot assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

type ChatResponse struct {
	Message  string `json:"message"`
	Degraded bool   `json:"degraded"`
}
