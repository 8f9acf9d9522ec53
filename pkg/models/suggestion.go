package models

// DateSuggestion is a candidate partner produced by the matching service.
// CompatibilityScore is opaque to the client.
type DateSuggestion struct {
	Candidate          UserSummary `json:"candidate" yaml:"candidate"`
	CompatibilityScore float64     `json:"compatibilityScore" yaml:"compatibility_score"`
	SharedInterests    []string    `json:"sharedInterests" yaml:"shared_interests"`
}

type SuggestionsResponse struct {
	UserID      string           `json:"userId"`
	Suggestions []DateSuggestion `json:"suggestions"`
}
