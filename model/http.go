package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type RecommendRequestBody struct {
	Analysis    AnalysisResult  `json:"analysis"`
	Preferences UserPreferences `json:"preferences"`
}

type ProcessResponse struct {
	ID              string            `json:"id"`
	Filename        string            `json:"filename,omitempty"`
	Analysis        *AnalysisResult   `json:"analysis"`
	Recommendations RecommendationSet `json:"recommendations"`
	Preferences     UserPreferences   `json:"user_preferences"`
	Midi            []byte            `json:"midi,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}
