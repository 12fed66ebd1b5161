// Package types defines the structured records shared across the application
// pipeline: candidate profiles, opportunity topics, and tailored applications.
package types

import (
	"encoding/json"
	"fmt"
)

// CandidateProfile is the normalized, fully-typed representation of a candidate
// CV. Required fields are always present after normalization; optional fields
// are empty strings or empty slices, never null.
type CandidateProfile struct {
	FullName    string       `json:"fullName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	LinkedinURL string       `json:"linkedinUrl,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Skills      []string     `json:"skills"`
	Projects    []Project    `json:"projects"`
}

// Experience is a single work history entry.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description"`
}

// Education is a single education history entry.
type Education struct {
	Degree    string `json:"degree"`
	School    string `json:"school"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

// Project is a personal or academic project entry.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
}

// EncodeProfile serializes a profile to its wire format. The same encoding is
// used for persistence and for embedding the profile into generation prompts.
func EncodeProfile(p *CandidateProfile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a profile from its wire format.
func DecodeProfile(data []byte) (*CandidateProfile, error) {
	var p CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// Clone returns a deep copy. Tailoring produces a new variant and must never
// mutate the stored source-of-truth record.
func (p *CandidateProfile) Clone() *CandidateProfile {
	clone := *p
	clone.Experience = append([]Experience(nil), p.Experience...)
	clone.Education = append([]Education(nil), p.Education...)
	clone.Skills = append([]string(nil), p.Skills...)
	clone.Projects = make([]Project, len(p.Projects))
	for i, proj := range p.Projects {
		clone.Projects[i] = proj
		clone.Projects[i].TechStack = append([]string(nil), proj.TechStack...)
	}
	return &clone
}

// IsEmpty reports whether the profile carries no candidate data at all.
func (p *CandidateProfile) IsEmpty() bool {
	return p.FullName == "" && p.Email == "" &&
		len(p.Experience) == 0 && len(p.Education) == 0 &&
		len(p.Skills) == 0 && len(p.Projects) == 0
}
