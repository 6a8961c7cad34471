package types

// QuestionCategory is the closed set of interview question categories.
type QuestionCategory string

// Question categories supported by the generator.
const (
	CategoryMotivational QuestionCategory = "Motivational"
	CategoryBehavioral   QuestionCategory = "Behavioral"
	CategoryTechnical    QuestionCategory = "Technical"
	CategoryPersonality  QuestionCategory = "Personality"
)

// AllCategories lists every valid question category.
var AllCategories = []QuestionCategory{
	CategoryMotivational,
	CategoryBehavioral,
	CategoryTechnical,
	CategoryPersonality,
}

// IsValid reports whether the category is one of the closed set.
func (c QuestionCategory) IsValid() bool {
	switch c {
	case CategoryMotivational, CategoryBehavioral, CategoryTechnical, CategoryPersonality:
		return true
	}
	return false
}

// Question is a generated interview question. Questions are created only by
// generation and are immutable once persisted; only the session's position
// index moves across them.
type Question struct {
	ID          string           `json:"id"`
	Text        string           `json:"text"`
	Category    QuestionCategory `json:"category"`
	JobSpecific bool             `json:"jobSpecific"`
	JobID       string           `json:"jobId,omitempty"`
}
