package types

// OpportunityTopic is a single internship topic extracted from an offer book
// or ingested from a posting page. Topics are read-only after creation.
type OpportunityTopic struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ReferenceNumber string   `json:"referenceNumber,omitempty"`
	TechStack       []string `json:"techStack"`
	CompanyName     string   `json:"companyName"`
	ContactEmail    string   `json:"contactEmail,omitempty"`
}
