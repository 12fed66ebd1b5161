package parsing

import (
	"strings"

	"github.com/jonathan/internship-apply/internal/types"
)

// ProfileDefaults supplies caller-provided identity fallbacks used when the
// generator's output is missing or malformed. Typically the authenticated
// user's own name and email.
type ProfileDefaults struct {
	FullName string
	Email    string
}

// NormalizeProfile converts a raw parsed object of unknown shape into a
// fully-typed CandidateProfile. Every required field that is absent, of the
// wrong type, or fails a shape check is replaced with its fallback. The
// second return value lists the defaulted field names for diagnostics; it is
// a recorded fact, never a failure. NormalizeProfile never returns an error.
func NormalizeProfile(raw map[string]any, fallback ProfileDefaults) (*types.CandidateProfile, []string) {
	var defaulted []string

	profile := &types.CandidateProfile{
		Experience: []types.Experience{},
		Education:  []types.Education{},
		Skills:     []string{},
		Projects:   []types.Project{},
	}

	profile.FullName = stringField(raw, "fullName", fallback.FullName, &defaulted)
	profile.Email = stringField(raw, "email", fallback.Email, &defaulted)
	profile.Phone = stringField(raw, "phone", "", &defaulted)
	profile.LinkedinURL = stringField(raw, "linkedinUrl", "", &defaulted)
	profile.Summary = stringField(raw, "summary", "", &defaulted)

	if items, ok := sliceField(raw, "experience", &defaulted); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			var sink []string
			profile.Experience = append(profile.Experience, types.Experience{
				Title:       stringField(entry, "title", "", &sink),
				Company:     stringField(entry, "company", "", &sink),
				StartDate:   stringField(entry, "startDate", "", &sink),
				EndDate:     stringField(entry, "endDate", "", &sink),
				Description: stringField(entry, "description", "", &sink),
			})
		}
	}

	if items, ok := sliceField(raw, "education", &defaulted); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			var sink []string
			profile.Education = append(profile.Education, types.Education{
				Degree:    stringField(entry, "degree", "", &sink),
				School:    stringField(entry, "school", "", &sink),
				StartDate: stringField(entry, "startDate", "", &sink),
				EndDate:   stringField(entry, "endDate", "", &sink),
			})
		}
	}

	if items, ok := sliceField(raw, "skills", &defaulted); ok {
		profile.Skills = uniqueStrings(items)
	}

	if items, ok := sliceField(raw, "projects", &defaulted); ok {
		for _, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			var sink []string
			project := types.Project{
				Name:        stringField(entry, "name", "", &sink),
				Description: stringField(entry, "description", "", &sink),
				TechStack:   []string{},
			}
			if stack, ok := sliceField(entry, "techStack", &sink); ok {
				project.TechStack = uniqueStrings(stack)
			}
			profile.Projects = append(profile.Projects, project)
		}
	}

	return profile, defaulted
}

// NormalizeTopic converts a raw topic-like object into a typed
// OpportunityTopic. The second return value reports whether the record is
// usable: records missing both a title and a description carry no information
// and are dropped by the caller rather than propagated.
func NormalizeTopic(raw map[string]any, companyName string) (*types.OpportunityTopic, bool) {
	var sink []string

	topic := &types.OpportunityTopic{
		Title:           stringField(raw, "title", "", &sink),
		Description:     stringField(raw, "description", "", &sink),
		ReferenceNumber: stringField(raw, "referenceNumber", "", &sink),
		TechStack:       []string{},
		CompanyName:     companyName,
		ContactEmail:    stringField(raw, "contactEmail", "", &sink),
	}

	if items, ok := sliceField(raw, "techStack", &sink); ok {
		topic.TechStack = uniqueStrings(items)
	}

	if topic.Title == "" || topic.Description == "" {
		return topic, false
	}
	return topic, true
}

// stringField reads a trimmed string value from raw, substituting fallback
// when the key is absent or not a string. Every substitution is recorded in
// defaulted.
func stringField(raw map[string]any, key, fallback string, defaulted *[]string) string {
	if value, exists := raw[key]; exists {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	*defaulted = append(*defaulted, key)
	return fallback
}

// sliceField reads a sequence value from raw. A missing key or a scalar where
// a sequence was expected is recorded as defaulted and reported unusable.
func sliceField(raw map[string]any, key string, defaulted *[]string) ([]any, bool) {
	value, exists := raw[key]
	if !exists {
		*defaulted = append(*defaulted, key)
		return nil, false
	}
	items, ok := value.([]any)
	if !ok {
		*defaulted = append(*defaulted, key)
		return nil, false
	}
	return items, true
}

// uniqueStrings extracts the string members of items, trimmed, deduplicated,
// and in first-seen order.
func uniqueStrings(items []any) []string {
	result := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}
