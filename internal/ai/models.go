package ai

// IntentResult captures the structured output from the AI model.
type IntentResult struct {
	// Intent describes the user's primary goal: "book", "quote", "question" or "chat".
	Intent string `json:"intent"`

	// Category is the vehicle class the user asked for (economy, compact,
	// sedan, suv, luxury). Nullable because not every message names one.
	Category *string `json:"category,omitempty"`

	// City is the service city the user mentioned, if any.
	City *string `json:"city,omitempty"`

	// StartDate and EndDate are ISO dates (YYYY-MM-DD) resolved from the
	// user's relative wording against the current date in the context.
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	// PickupLocation and DropoffLocation are free-form location strings whose
	// leading token names a city.
	PickupLocation  *string `json:"pickup_location,omitempty"`
	DropoffLocation *string `json:"dropoff_location,omitempty"`

	// Reply is a short, polite response to the user in the voice of the
	// rental desk assistant.
	Reply string `json:"reply"`
}
