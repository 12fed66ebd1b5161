package parsing

import (
	"fmt"
	"strings"

	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/jonathan/internship-apply/internal/prompts"
)

// Kind identifies which extraction a request performs.
type Kind string

// Extraction kinds supported by the pipeline.
const (
	KindProfile Kind = "profile"
	KindTopics  Kind = "topics"
	KindTailor  Kind = "tailor"
)

// Request is a fully-built generation instruction: the prompt text and the
// model tier it should run on. Building is deterministic for identical inputs;
// the structured-output mode is enforced by the client for every request.
type Request struct {
	Kind   Kind
	Prompt string
	Tier   llm.ModelTier
}

// tierForKind maps extraction kinds onto model tiers. Topic lists are simple
// enumeration; profile parsing needs structure; tailoring needs writing.
var tierForKind = map[Kind]llm.ModelTier{
	KindProfile: llm.TierStandard,
	KindTopics:  llm.TierLite,
	KindTailor:  llm.TierAdvanced,
}

// BuildRequest constructs the generation instruction for a kind. sourceText is
// embedded verbatim. extra carries kind-specific values: for tailor, the
// serialized candidate profile, the topic fields, and the current-date string.
func BuildRequest(kind Kind, sourceText string, extra map[string]string) (*Request, error) {
	data := map[string]string{"SourceText": sourceText}
	for k, v := range extra {
		data[k] = v
	}

	var template string
	switch kind {
	case KindProfile:
		template = prompts.MustGet("extraction.json", "extract-profile")
	case KindTopics:
		template = prompts.MustGet("extraction.json", "extract-topics")
	case KindTailor:
		template = prompts.MustGet("tailoring.json", "tailor-application")
		for _, required := range []string{"Profile", "Title", "CompanyName", "Description", "CurrentDate"} {
			if strings.TrimSpace(data[required]) == "" {
				return nil, fmt.Errorf("tailor request missing %s", required)
			}
		}
	default:
		return nil, fmt.Errorf("unknown extraction kind %q", kind)
	}

	return &Request{
		Kind:   kind,
		Prompt: prompts.Format(template, data),
		Tier:   tierForKind[kind],
	}, nil
}
