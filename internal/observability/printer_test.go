package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/internship-apply/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.CandidateProfile{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Skills:   []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Redis", "Kafka", "gRPC"},
	})

	out := buf.String()
	assert.Contains(t, out, "Candidate Profile")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "... and 2 more")
	assert.NotContains(t, out, "Kafka")
}

func TestPrintProfileNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTopicsTruncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	topics := make([]types.OpportunityTopic, 8)
	for i := range topics {
		topics[i] = types.OpportunityTopic{
			Title:           "Backend Internship",
			ReferenceNumber: "REF-1",
			TechStack:       []string{"Go"},
		}
	}
	p.PrintTopics(topics)

	out := buf.String()
	assert.Contains(t, out, "Topics extracted: 8")
	assert.Equal(t, maxItemsToShow, strings.Count(out, "Backend Internship"))
	assert.Contains(t, out, "... and 3 more")
}

func TestPrintDefaultedFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDefaultedFields(nil)
	assert.Empty(t, buf.String())

	p.PrintDefaultedFields([]string{"fullName", "email"})
	out := buf.String()
	assert.Contains(t, out, "Defaulted Fields")
	assert.Contains(t, out, "fullName")
	assert.Contains(t, out, "email")
}

func TestLongLinesAreTruncatedToBoxWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTopics([]types.OpportunityTopic{{
		Title: strings.Repeat("x", 200),
	}})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
