package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "normalizes line endings",
			in:   "one\r\ntwo\rthree",
			want: "one\ntwo\nthree",
		},
		{
			name: "collapses runs of spaces",
			in:   "Software   Engineering    Intern",
			want: "Software Engineering Intern",
		},
		{
			name: "caps blank line runs",
			in:   "Experience\n\n\n\n\nEducation",
			want: "Experience\n\nEducation",
		},
		{
			name: "keeps bullet indentation",
			in:   "Skills\n  - Go\n  - SQL",
			want: "Skills\n  - Go\n  - SQL",
		},
		{
			name: "trims surrounding whitespace",
			in:   "\n\n  Jane Doe  \n\n",
			want: "Jane Doe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
