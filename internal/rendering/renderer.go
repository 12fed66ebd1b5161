package rendering

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-apply/internal/types"
)

// PDFRenderer converts a rendered HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer renders documents through a headless Chrome instance.
// Requires Chrome or Chromium on the host; CHROME_PATH overrides discovery.
type ChromeRenderer struct {
	Timeout time.Duration
}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{Timeout: 60 * time.Second}
}

func (r *ChromeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.Timeout)
	defer cancelTimeout()

	// Chrome resolves relative URLs badly for data: documents, so the HTML
	// goes through a temp file instead.
	tmpDir, err := os.MkdirTemp("", "apply-doc-")
	if err != nil {
		return nil, &RenderError{Message: "creating temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "writing document", Cause: err}
	}

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			// A4: 210mm x 297mm in inches.
			pdfBuf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "printing to PDF", Cause: err}
	}

	return pdfBuf, nil
}

// Documents holds the rendered attachments for one application.
type Documents struct {
	ResumePDF      []byte
	CoverLetterPDF []byte
}

// RenderApplicationDocuments renders the tailored resume and cover letter to
// PDF concurrently. Either document failing fails the whole operation.
func RenderApplicationDocuments(ctx context.Context, renderer PDFRenderer, resume *types.CandidateProfile, app *types.TailoredApplication, now time.Time) (*Documents, error) {
	resumeHTML, err := RenderResumeHTML(resume)
	if err != nil {
		return nil, err
	}
	letterHTML, err := RenderCoverLetterHTML(resume, app.EmailSubject, app.CoverLetterText, now)
	if err != nil {
		return nil, err
	}

	docs := &Documents{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pdf, err := renderer.RenderHTMLToPDF(gctx, resumeHTML)
		if err != nil {
			return err
		}
		docs.ResumePDF = pdf
		return nil
	})
	g.Go(func() error {
		pdf, err := renderer.RenderHTMLToPDF(gctx, letterHTML)
		if err != nil {
			return err
		}
		docs.CoverLetterPDF = pdf
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}
