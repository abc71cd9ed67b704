package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// chromeEngine prints an HTML rendition of the content with headless Chrome.
// Each call starts and stops its own browser.
type chromeEngine struct {
	execPath string
	markdown bool
	logger   *zap.Logger
}

func (e chromeEngine) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
	)
	if e.execPath != "" {
		opts = append(opts, chromedp.ExecPath(e.execPath))
	}
	return opts
}

func (e chromeEngine) writePDF(ctx context.Context, content string, buf *bytes.Buffer) error {
	doc, err := htmlDocument(content, e.markdown)
	if err != nil {
		return fmt.Errorf("building html: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	e.logger.Debug("printing pdf with chrome", zap.Int("html_bytes", len(doc)))

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			if err := page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx); err != nil {
				return err
			}
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("chrome pdf: %w", err)
	}
	buf.Write(pdf)
	return nil
}
