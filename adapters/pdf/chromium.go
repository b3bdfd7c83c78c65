package pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-quotedoc/render"
)

const defaultScale = 1.0

// mmPerInch converts document margins (millimeters) to print units.
const mmPerInch = 25.4

var pageSizesInches = map[render.PageSize]struct {
	width  float64
	height float64
}{
	render.PageA4:     {width: 8.27, height: 11.69},
	render.PageLetter: {width: 8.5, height: 11},
	render.PageLegal:  {width: 8.5, height: 14},
}

// Engine renders HTML content into PDF bytes.
type Engine interface {
	Render(ctx context.Context, html []byte, metadata render.PageMetadata) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, html []byte, metadata render.PageMetadata) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, html []byte, metadata render.PageMetadata) ([]byte, error) {
	if f == nil {
		return nil, errors.New("pdf engine func is nil")
	}
	return f(ctx, html, metadata)
}

// Assembler turns a resolved render tree into a paginated PDF.
type Assembler struct {
	Engine Engine
}

// Assemble serializes the tree to HTML and prints it with the configured
// engine, honoring the document's page size, orientation, and margins.
func (a Assembler) Assemble(ctx context.Context, tree *render.Tree, doc *render.Document) ([]byte, error) {
	if a.Engine == nil {
		return nil, render.NewError(render.KindValidation, "pdf assembler requires an engine", nil)
	}
	if doc == nil {
		return nil, render.NewError(render.KindValidation, "document is required", nil)
	}
	html, err := SerializeHTML(tree, doc)
	if err != nil {
		return nil, err
	}
	return a.Engine.Render(ctx, html, doc.Metadata)
}

// ChromiumEngine renders PDF output using a shared headless Chromium
// instance.
type ChromiumEngine struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Scale       float64

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Render executes Chromium-based HTML-to-PDF rendering.
func (e *ChromiumEngine) Render(ctx context.Context, html []byte, metadata render.PageMetadata) ([]byte, error) {
	if e == nil {
		return nil, render.NewError(render.KindInternal, "chromium engine is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, render.NewError(render.KindInternal, "chromium engine init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		defer cancelTimeout()
	}

	params, err := e.printParams(metadata)
	if err != nil {
		return nil, err
	}

	var pdf []byte
	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err = params.Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, render.NewError(render.KindInternal, "chromium pdf render failed", err)
	}
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *ChromiumEngine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func (e *ChromiumEngine) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func (e *ChromiumEngine) printParams(metadata render.PageMetadata) (*page.PrintToPDFParams, error) {
	scale := e.Scale
	if scale == 0 {
		scale = defaultScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, render.NewError(render.KindValidation, "pdf scale must be between 0.1 and 2.0", nil)
	}

	params := page.PrintToPDF().
		WithScale(scale).
		WithPrintBackground(true).
		WithLandscape(metadata.Orientation == render.OrientationLandscape)

	pageSize := metadata.PageSize
	if pageSize == "" {
		pageSize = render.PageA4
	}
	size, ok := pageSizesInches[pageSize]
	if !ok {
		return nil, render.NewError(render.KindValidation, fmt.Sprintf("unsupported pdf page size: %s", pageSize), nil)
	}
	params = params.WithPaperWidth(size.width).WithPaperHeight(size.height)

	params = params.
		WithMarginTop(metadata.Margins.Top / mmPerInch).
		WithMarginRight(metadata.Margins.Right / mmPerInch).
		WithMarginBottom(metadata.Margins.Bottom / mmPerInch).
		WithMarginLeft(metadata.Margins.Left / mmPerInch)

	return params, nil
}
