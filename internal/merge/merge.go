// Package merge implements the one-directional fill policy for profile
// enrichment: extracted resume data augments a profile but never supersedes
// anything the user entered by hand.
package merge

import (
	"github.com/jonathan/interview-prep/internal/types"
)

// FillProfile merges an extracted candidate into the current profile.
// Scalar fields are filled only when the current value is empty. Collection
// fields are replaced wholesale only when the current collection is empty and
// the candidate's is non-empty — elements are never merged, removed or
// reordered. The result is a new Profile; neither input is mutated.
//
// Because filled fields are no longer empty, applying the same candidate a
// second time is a no-op: the merge is idempotent.
func FillProfile(current types.Profile, candidate types.ExtractedProfile) types.Profile {
	merged := current

	merged.Name = fillString(current.Name, candidate.Name)
	merged.Email = fillString(current.Email, candidate.Email)
	merged.Phone = fillString(current.Phone, candidate.Phone)
	merged.Location = fillString(current.Location, candidate.Location)
	merged.Summary = fillString(current.Summary, candidate.Summary)
	merged.AdditionalInfo = fillString(current.AdditionalInfo, candidate.AdditionalInfo)

	if len(current.Education) == 0 && len(candidate.Education) > 0 {
		merged.Education = append([]types.Education(nil), candidate.Education...)
	}
	if len(current.WorkExperience) == 0 && len(candidate.WorkExperience) > 0 {
		merged.WorkExperience = append([]types.WorkExperience(nil), candidate.WorkExperience...)
	}
	if len(current.Projects) == 0 && len(candidate.Projects) > 0 {
		merged.Projects = append([]types.Project(nil), candidate.Projects...)
	}
	if len(current.Skills) == 0 && len(candidate.Skills) > 0 {
		merged.Skills = append([]types.Skill(nil), candidate.Skills...)
	}
	if len(current.Extracurriculars) == 0 && len(candidate.Extracurriculars) > 0 {
		merged.Extracurriculars = append([]types.Extracurricular(nil), candidate.Extracurriculars...)
	}

	merged.EnsureCollections()
	return merged
}

// ApplyEnhancement merges an AI-enhanced candidate into the profile, letting
// non-empty candidate fields overwrite. This is the one deliberate overwrite
// path: enhancement rewrites prose in place, unlike extraction which only
// fills gaps. Empty candidate fields still leave the profile untouched.
func ApplyEnhancement(current types.Profile, enhanced types.ExtractedProfile) types.Profile {
	merged := current

	merged.Name = overwriteString(current.Name, enhanced.Name)
	merged.Email = overwriteString(current.Email, enhanced.Email)
	merged.Phone = overwriteString(current.Phone, enhanced.Phone)
	merged.Location = overwriteString(current.Location, enhanced.Location)
	merged.Summary = overwriteString(current.Summary, enhanced.Summary)
	merged.AdditionalInfo = overwriteString(current.AdditionalInfo, enhanced.AdditionalInfo)

	if len(enhanced.Education) > 0 {
		merged.Education = append([]types.Education(nil), enhanced.Education...)
	}
	if len(enhanced.WorkExperience) > 0 {
		merged.WorkExperience = append([]types.WorkExperience(nil), enhanced.WorkExperience...)
	}
	if len(enhanced.Projects) > 0 {
		merged.Projects = append([]types.Project(nil), enhanced.Projects...)
	}
	if len(enhanced.Skills) > 0 {
		merged.Skills = append([]types.Skill(nil), enhanced.Skills...)
	}
	if len(enhanced.Extracurriculars) > 0 {
		merged.Extracurriculars = append([]types.Extracurricular(nil), enhanced.Extracurriculars...)
	}

	merged.EnsureCollections()
	return merged
}

func overwriteString(current, candidate string) string {
	if candidate != "" {
		return candidate
	}
	return current
}

func fillString(current, candidate string) string {
	if current == "" && candidate != "" {
		return candidate
	}
	return current
}
