package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/internship-apply/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting page cannot be fetched.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no readable text can be
	// pulled out of the fetched page.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// FetchPostingText retrieves an internship posting page and reduces it to
// clean text. Platform-specific selectors narrow the page to the posting
// body. When useBrowser is set and the plain fetch yields too little text,
// the page is re-rendered in a headless browser before giving up.
func FetchPostingText(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr)
		if browserErr == nil {
			if rendered, rErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); rErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: page yielded no text", ErrContentExtractionFailed)
	}
	return cleaned, nil
}
