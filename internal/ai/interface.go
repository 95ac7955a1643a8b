package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type LLMProvider interface {
	// ParseRentalIntent analyzes the user's natural language input and extracts
	// structured rental intent. contextMap carries dynamic information like
	// "current_date", "conversation_state" and "known_fields".
	ParseRentalIntent(ctx context.Context, userMessage string, contextMap map[string]string) (*IntentResult, error)
}
