package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ParseRentalIntent analyzes user input to extract car-rental intent.
func (p *GeminiProvider) ParseRentalIntent(ctx context.Context, userMessage string, contextMap map[string]string) (*IntentResult, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", buildSystemPrompt(contextMap), userMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Strip potential markdown fences; JSON mode should prevent them, but
	// models occasionally emit them anyway.
	cleanJSON := cleanJSONString(responseText.String())

	var result IntentResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return &result, nil
}

// buildSystemPrompt constructs the instructions for the AI.
func buildSystemPrompt(ctxMap map[string]string) string {
	currentDate := ctxMap["current_date"]
	state := ctxMap["conversation_state"]
	knownFields := ctxMap["known_fields"]

	if currentDate == "" {
		currentDate = "UNKNOWN_DATE"
	}
	if state == "" {
		state = "idle"
	}
	if knownFields == "" {
		knownFields = "NONE"
	}

	return fmt.Sprintf(`Role: You are the booking assistant for "Hanco", a car rental service in Saudi Arabia.
Context:
- Current Date: %s
- Conversation State: %s
- Already Known Fields: %s

Supported cities: Riyadh, Jeddah, Dammam, Mecca, Medina, Taif.
Supported vehicle categories: economy, compact, sedan, suv, luxury.

RULES:
1. Classify the message: "book" (wants to rent), "quote" (asks about price),
   "question" (asks about the service) or "chat" (anything else).
2. Extract only fields the user actually stated. Never invent dates, cities
   or categories. Leave unknown fields null.
3. Resolve relative dates ("next Friday", "tomorrow", "for a week") against
   the Current Date into YYYY-MM-DD. A duration without a start date only
   fills end_date once start_date is known.
4. Mentions of "one way", dropping off in another city, or two different
   cities imply pickup_location and dropoff_location; keep the city name as
   the first word of each.
5. Keep "reply" to one or two friendly sentences. If a booking field is still
   missing, ask for exactly one missing field, in the order: category, dates,
   pickup city, dropoff city.
6. Never quote a price yourself. Prices come from the pricing engine; if the
   user asks, acknowledge and let the booking flow produce the quote.

Respond with a single JSON object matching the agreed schema.`, currentDate, state, knownFields)
}

// cleanJSONString removes markdown code fences around a JSON payload.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
