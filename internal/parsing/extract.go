// Package parsing turns raw document text into typed records via structured
// generation: prompt construction, the generation call, failure
// classification, and schema normalization of whatever comes back.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/jonathan/internship-apply/internal/schemas"
	"github.com/jonathan/internship-apply/internal/types"
)

// errMissingTopics flags a topic response without a usable topics array.
var errMissingTopics = errors.New(`response has no "topics" array`)

// Extractor issues structured extraction calls against a generative model.
// Callers always receive either a fully-normalized record or a classified
// error, never a partially-typed object.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an Extractor over an existing model client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractProfile parses CV text into a normalized CandidateProfile. The
// returned string slice lists fields filled from defaults, for diagnostics.
func (e *Extractor) ExtractProfile(ctx context.Context, sourceText string, defaults ProfileDefaults) (*types.CandidateProfile, []string, error) {
	req, err := BuildRequest(KindProfile, sourceText, nil)
	if err != nil {
		return nil, nil, err
	}

	raw, content, err := e.generateObject(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if verr := schemas.ValidateProfileJSON(content); verr != nil {
		log.Printf("profile output failed schema check, normalizing anyway: %v", verr)
	}

	profile, defaulted := NormalizeProfile(raw, defaults)
	return profile, defaulted, nil
}

// ExtractTopics parses offer-book text into a list of normalized topics.
// Records missing a title or description are dropped rather than propagated.
func (e *Extractor) ExtractTopics(ctx context.Context, sourceText, companyName string) ([]types.OpportunityTopic, error) {
	req, err := BuildRequest(KindTopics, sourceText, nil)
	if err != nil {
		return nil, err
	}

	raw, content, err := e.generateObject(ctx, req)
	if err != nil {
		return nil, err
	}

	if verr := schemas.ValidateTopicsJSON(content); verr != nil {
		log.Printf("topics output failed schema check, normalizing anyway: %v", verr)
	}

	items, ok := raw["topics"].([]any)
	if !ok {
		return nil, &MalformedOutputError{
			Content: content,
			Cause:   errMissingTopics,
		}
	}

	topics := make([]types.OpportunityTopic, 0, len(items))
	dropped := 0
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		topic, usable := NormalizeTopic(record, companyName)
		if !usable {
			dropped++
			continue
		}
		topics = append(topics, *topic)
	}
	if dropped > 0 {
		log.Printf("dropped %d unusable topic records out of %d", dropped, len(items))
	}

	return topics, nil
}

// ExtractTailored runs a pre-built tailor request and returns the raw parsed
// object; the tailoring engine owns field-by-field normalization.
func (e *Extractor) ExtractTailored(ctx context.Context, req *Request) (map[string]any, error) {
	raw, _, err := e.generateObject(ctx, req)
	return raw, err
}

// generateObject issues the generation call and classifies every failure:
// transport error, empty content, or unparseable content. On success it
// returns the parsed top-level object alongside the cleaned content.
func (e *Extractor) generateObject(ctx context.Context, req *Request) (map[string]any, string, error) {
	content, err := e.client.GenerateJSON(ctx, req.Prompt, req.Tier)
	if err != nil {
		return nil, "", &UnavailableError{Cause: err}
	}

	if strings.TrimSpace(content) == "" {
		return nil, "", &EmptyResponseError{}
	}

	payload := llm.ExtractJSONPayload(content)

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, "", &MalformedOutputError{Content: content, Cause: err}
	}

	return raw, payload, nil
}
