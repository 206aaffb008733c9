package portal

import (
	"context"
	"fmt"
	"sync"

	"super_sheets/internal/credentials"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

const (
	userSelector     = `input[name=user]`
	passwordSelector = `input[name=password]`
	submitSelector   = `#btnSubmit`
)

// Options control how Chrome is started.
type Options struct {
	NoSandbox bool
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
}

// Browser owns a headless Chrome instance. Callers must Close it.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
	closeErr    error
}

// Launch starts headless Chrome and opens one tab.
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancel := chromedp.NewContext(allocCtx)

	// first Run with no actions starts the browser
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Debug().Bool("no_sandbox", opts.NoSandbox).Msg("Browser launched")
	return &Browser{ctx: tabCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = chromedp.Cancel(b.ctx)
		b.cancel()
		b.allocCancel()
		if b.closeErr != nil {
			log.Warn().Err(b.closeErr).Msg("Browser did not close cleanly")
		} else {
			log.Debug().Msg("Browser closed")
		}
	})
	return b.closeErr
}

// bind returns a context that carries the browser tab but is also cancelled with ctx.
func (b *Browser) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	var runCtx context.Context
	var cancel context.CancelFunc
	if deadline, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(b.ctx, deadline)
	} else {
		runCtx, cancel = context.WithCancel(b.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Login fills the portal login form and waits for the page that follows.
// Form fields are looked up once; a missing field fails straight away.
func (b *Browser) Login(ctx context.Context, portalURL string, creds credentials.Credentials) error {
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	log.Debug().Str("url", portalURL).Msg("Opening portal")
	if err := chromedp.Run(runCtx, chromedp.Navigate(portalURL)); err != nil {
		return fmt.Errorf("failed to open portal: %w", err)
	}

	err := chromedp.Run(runCtx,
		chromedp.SendKeys(userSelector, creds.Username, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.SendKeys(passwordSelector, creds.Password, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return fmt.Errorf("failed to fill login form: %w", err)
	}

	loaded := waitForLoad(runCtx)
	if err := chromedp.Run(runCtx, chromedp.Click(submitSelector, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	select {
	case <-loaded:
	case <-runCtx.Done():
		return fmt.Errorf("waiting for login navigation: %w", runCtx.Err())
	}

	log.Debug().Msg("Logged in to portal")
	return nil
}

// HTML returns the rendered document once selector matches at least one node.
func (b *Browser) HTML(ctx context.Context, selector string) (string, error) {
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to read account page: %w", err)
	}
	return html, nil
}

// waitForLoad returns a channel closed on the next page load event.
func waitForLoad(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	var once sync.Once
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			once.Do(func() { close(done) })
		}
	})
	return done
}
