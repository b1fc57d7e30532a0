package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

// Options configures a browser launch
type Options struct {
	Headless  bool
	ChromeBin string
}

// Session wraps a rod browser with the single page the checks run against
type Session struct {
	ID        string
	Browser   *rod.Browser
	Page      *rod.Page
	CreatedAt time.Time
}

// Launch starts a Chrome instance and opens a blank page
func Launch(opts Options) (*Session, error) {
	l := launcher.New()

	// CHROME_BIN wins over the option (Docker environment)
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		l = l.Bin(chromeBin)
	} else if opts.ChromeBin != "" {
		l = l.Bin(opts.ChromeBin)
	}

	l = l.Headless(opts.Headless)

	// Chrome flags for Docker compatibility
	l = l.Set("no-sandbox")
	l = l.Set("disable-gpu")
	l = l.Set("disable-dev-shm-usage")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{
		ID:        uuid.New().String(),
		Browser:   b,
		Page:      page,
		CreatedAt: time.Now(),
	}, nil
}

// Close shuts down the browser
func (s *Session) Close() error {
	if s.Browser == nil {
		return nil
	}
	return s.Browser.Close()
}

// Navigate opens the URL and waits for the load event
func (s *Session) Navigate(url string) error {
	if err := s.Page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := s.Page.WaitLoad(); err != nil {
		return fmt.Errorf("page load did not complete: %w", err)
	}
	return nil
}

// Reload reloads the current page and waits for the load event
func (s *Session) Reload() error {
	if err := s.Page.Reload(); err != nil {
		return fmt.Errorf("failed to reload page: %w", err)
	}
	if err := s.Page.WaitLoad(); err != nil {
		return fmt.Errorf("page load did not complete after reload: %w", err)
	}
	return nil
}

// Click dispatches a left click on the first element matching the selector
func (s *Session) Click(selector string) error {
	elem, err := s.Page.Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s", selector)
	}
	if err := elem.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// BodyClassList returns document.body.className split into class names
func (s *Session) BodyClassList() ([]string, error) {
	obj, err := s.Page.Eval(`() => document.body.className`)
	if err != nil {
		return nil, fmt.Errorf("failed to read body class: %w", err)
	}
	return strings.Fields(obj.Value.Str()), nil
}

// SetViewport overrides device metrics to the given size
func (s *Session) SetViewport(width, height int) error {
	err := s.Page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
	if err != nil {
		return fmt.Errorf("failed to set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

// ElementWidth returns the rendered width of the first element matching the
// selector, or an error if no element matches. Width comes from the layout
// box, so a display:none element reports 0.
func (s *Session) ElementWidth(selector string) (float64, error) {
	obj, err := s.Page.Eval(`(sel) => {
		const el = document.querySelector(sel);
		return el ? el.getBoundingClientRect().width : -1;
	}`, selector)
	if err != nil {
		return 0, fmt.Errorf("failed to measure %s: %w", selector, err)
	}
	width := obj.Value.Num()
	if width < 0 {
		return 0, fmt.Errorf("element not found: %s", selector)
	}
	return width, nil
}

// Screenshot captures a full-page PNG and writes it under dir
func (s *Session) Screenshot(dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}

	data, err := s.Page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	return path, nil
}

// ==================== Session Pool ====================

// Pool tracks live sessions by ID so Temporal activities can share a browser
// across activity invocations.
type Pool struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewPool creates an empty session pool
func NewPool() *Pool {
	return &Pool{sessions: make(map[string]*Session)}
}

// Put registers a session under its ID
func (p *Pool) Put(s *Session) {
	p.mu.Lock()
	p.sessions[s.ID] = s
	p.mu.Unlock()
}

// Get returns the session for the ID, or nil
func (p *Pool) Get(id string) *Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sessions[id]
}

// Remove closes and forgets the session. Removing an unknown ID is a no-op.
func (p *Pool) Remove(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[id]
	if !ok {
		return nil
	}
	delete(p.sessions, id)
	return s.Close()
}
