package browser_test

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	contentAdapter "symptowise/internal/adapters/content"
	web "symptowise/internal/adapters/http"
	"symptowise/internal/adapters/http/middleware"
	"symptowise/internal/adapters/http/perf"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL  string
	Server   *http.Server
	PW       *playwright.Playwright
	Browser  playwright.Browser
	Sessions *middleware.SessionStore
}

// newTestApp wires the full handler chain on a free port and starts Playwright.
// The contact delay is shortened so form tests stay fast while still exercising the pending state.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	site, err := contentAdapter.Load()
	if err != nil {
		t.Fatalf("failed to load site copy: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	sessions := middleware.NewSessionStore(time.Hour)
	web.RateLimitPerSecond = 1000
	mux := web.NewMux(ctx, web.Deps{
		Site:         site,
		Sessions:     sessions,
		ContactDelay: 300 * time.Millisecond,
		CSRFKey:      make([]byte, 32),
	}, perf.NewCollector(1000))

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL:  baseURL,
		Server:   srv,
		PW:       pw,
		Browser:  browser,
		Sessions: sessions,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		cancel()
	})

	return app
}

// newPage creates a new browser page (tab) with its own cookie jar.
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	bctx, err := a.Browser.NewContext()
	if err != nil {
		t.Fatalf("failed to create browser context: %v", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() {
		page.Close()
		bctx.Close()
	})
	return page
}

// visit navigates and fails the test on error.
func (a *testApp) visit(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + path); err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
}

// waitVisible waits for selector to appear.
func waitVisible(t *testing.T, page playwright.Page, selector string, timeoutMs float64) {
	t.Helper()
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		t.Fatalf("%s not visible: %v", selector, err)
	}
}
