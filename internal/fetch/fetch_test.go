package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "InternshipAgent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><main>Backend Intern</main></body></html>"))
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Backend Intern")
}

func TestURLNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURLInvalid(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative/path"} {
		_, err := URL(context.Background(), bad, nil)
		assert.Error(t, err, "url %q", bad)
	}
}

func TestExtractMainTextUsesSelectors(t *testing.T) {
	html := `<html><body>
		<nav>Site nav</nav>
		<div class="job-description">Summer internship, Go backend.</div>
		<footer>Footer junk</footer>
	</body></html>`

	text, err := ExtractMainText(html, PostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Summer internship")
	assert.NotContains(t, text, "Site nav")
	assert.NotContains(t, text, "Footer junk")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain page text.</p></body></html>`

	text, err := ExtractMainText(html, []string{".does-not-exist"})
	require.NoError(t, err)
	assert.Contains(t, text, "Plain page text.")
}

func TestExtractMainTextRemovesNoise(t *testing.T) {
	html := `<html><body><main>
		<p>Apply for the internship.</p>
		<form class="application-form">First name</form>
	</main></body></html>`

	text, err := ExtractMainText(html, []string{"main"}, ".application-form")
	require.NoError(t, err)
	assert.Contains(t, text, "Apply for the internship.")
	assert.NotContains(t, text, "First name")
}
