package model

type Recommendation struct {
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SpecificAdvice string `json:"specific_advice"`
}

type UserContext struct {
	Goals       []Goal `json:"goals"`
	TargetGenre Genre  `json:"target_genre"`
	Notes       string `json:"notes"`
}

type RecommendationSet struct {
	Harmonic             []Recommendation `json:"harmonic_suggestions"`
	Melodic              []Recommendation `json:"melodic_suggestions"`
	Rhythmic             []Recommendation `json:"rhythmic_suggestions"`
	Structural           []Recommendation `json:"structural_suggestions"`
	Arrangement          []Recommendation `json:"arrangement_ideas"`
	Development          []Recommendation `json:"development_strategies"`
	GenreTips            []Recommendation `json:"genre_specific_tips"`
	PersonalizedPriority []Recommendation `json:"personalized_priority"`
	UserContext          UserContext      `json:"user_context"`
}

// InstrumentRole tags a generated track. Roles beyond the requestable
// instruments come from goal-driven additions.
type InstrumentRole string

const (
	RoleBass    InstrumentRole = "bass"
	RoleDrums   InstrumentRole = "drums"
	RoleChords  InstrumentRole = "chords"
	RoleStrings InstrumentRole = "strings"
	RoleLead    InstrumentRole = "lead"
	RolePad     InstrumentRole = "pad"
	RoleIntro   InstrumentRole = "intro"
)

type GeneratedTrack struct {
	Track
	Role InstrumentRole `json:"role"`
}
