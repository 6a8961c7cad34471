// Package types provides type definitions for structured data used throughout the interview-prep system.
package types

import "time"

// Education represents a single education entry on a profile.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// WorkExperience represents a single employment entry on a profile.
type WorkExperience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description []string `json:"description,omitempty"`
}

// Project represents a personal or professional project entry.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  []string `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Skill represents a named skill with an optional proficiency level.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"` // Beginner, Intermediate, Advanced, Expert
}

// Extracurricular represents a non-work activity entry.
type Extracurricular struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Profile is the full user profile: identity, free-text fields and the
// ordered collections. Collections are merge targets — enrichment appends
// into empty collections and never removes or reorders existing elements.
type Profile struct {
	UserID           string            `json:"uid"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone,omitempty"`
	Location         string            `json:"location,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Education        []Education       `json:"education"`
	WorkExperience   []WorkExperience  `json:"workExperience"`
	Projects         []Project         `json:"projects"`
	Skills           []Skill           `json:"skills"`
	Extracurriculars []Extracurricular `json:"extracurriculars"`
	AdditionalInfo   string            `json:"additionalInfo,omitempty"`
	CreatedAt        time.Time         `json:"createdAt,omitempty"`
	UpdatedAt        time.Time         `json:"updatedAt,omitempty"`
}

// ExtractedProfile is the same shape as Profile but fully partial: it is what
// the AI gateway produces from raw resume text. It has no identity of its own
// and is consumed once by the merger, then discarded.
type ExtractedProfile struct {
	Name             string            `json:"name,omitempty"`
	Email            string            `json:"email,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	Location         string            `json:"location,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Education        []Education       `json:"education,omitempty"`
	WorkExperience   []WorkExperience  `json:"workExperience,omitempty"`
	Projects         []Project         `json:"projects,omitempty"`
	Skills           []Skill           `json:"skills,omitempty"`
	Extracurriculars []Extracurricular `json:"extracurriculars,omitempty"`
	AdditionalInfo   string            `json:"additionalInfo,omitempty"`
}

// EnsureCollections replaces nil collection slices with empty ones so JSON
// serialization always emits arrays, never null.
func (p *Profile) EnsureCollections() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []WorkExperience{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Extracurriculars == nil {
		p.Extracurriculars = []Extracurricular{}
	}
}
