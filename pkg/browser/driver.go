// pkg/browser/driver.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ErrLoginFailed indicates the org rejected the supplied credentials: the
// login form was still present after submitting.
var ErrLoginFailed = errors.New("login form rejected the credentials")

// ErrLabelNotFound indicates no visible element matched the requested label.
var ErrLabelNotFound = errors.New("no element with the requested label")

// sessionCookie is the API session cookie set by the platform after login.
const sessionCookie = "sid"

// Credentials identify one org's admin login.
type Credentials struct {
	LoginURL string
	Username string
	Password string
}

// Options configure a browser session. The inter-action delay is the only
// pacing mechanism; there are no retries and no per-step timeouts beyond
// navigation.
type Options struct {
	Headless          bool
	InterActionDelay  time.Duration
	NavigationTimeout time.Duration
}

// Session drives the admin UI of a single org through one page.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	opts    Options
	logger  *zap.Logger
}

// NewSession launches a browser and connects to it.
func NewSession(opts Options, logger *zap.Logger) (*Session, error) {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}

	controlURL, err := launcher.New().Headless(opts.Headless).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	return &Session{browser: b, opts: opts, logger: logger}, nil
}

// Login opens the org's login page and submits the credentials. The API
// session cookie is available through SessionToken afterwards.
func (s *Session) Login(ctx context.Context, creds Credentials) error {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: creds.LoginURL})
	if err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	s.page = page.Context(ctx)

	if err := s.page.Timeout(s.opts.NavigationTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	if err := s.Type("#username", creds.Username); err != nil {
		return err
	}
	if err := s.Type("#password", creds.Password); err != nil {
		return err
	}
	if err := s.Click("#Login"); err != nil {
		return err
	}
	if err := s.page.Timeout(s.opts.NavigationTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("load landing page: %w", err)
	}
	s.pause()

	// Still on the login form means the org rejected us.
	if has, _, _ := s.page.Has("#Login"); has {
		return fmt.Errorf("%s: %w", creds.Username, ErrLoginFailed)
	}

	if s.logger != nil {
		s.logger.Info("Logged in", zap.String("username", creds.Username))
	}
	return nil
}

// Navigate loads a URL in the session page and waits for it to settle.
func (s *Session) Navigate(rawURL string) error {
	if err := s.page.Timeout(s.opts.NavigationTimeout).Navigate(rawURL); err != nil {
		return fmt.Errorf("navigate to %s: %w", rawURL, err)
	}
	if err := s.page.Timeout(s.opts.NavigationTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("load %s: %w", rawURL, err)
	}
	s.pause()
	return nil
}

// Click clicks the element matching the selector.
func (s *Session) Click(selector string) error {
	el, err := s.page.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	s.pause()
	return nil
}

// Type fills the element matching the selector with text.
func (s *Session) Type(selector, text string) error {
	el, err := s.page.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	s.pause()
	return nil
}

// SelectByLabel picks an option inside a select element by its visible text.
func (s *Session) SelectByLabel(selector, label string) error {
	el, err := s.page.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	if err := el.Select([]string{label}, true, rod.SelectorTypeText); err != nil {
		return fmt.Errorf("select %q in %s: %w", label, selector, err)
	}
	s.pause()
	return nil
}

// ClickByText clicks the first anchor whose visible text equals the label.
// Returns ErrLabelNotFound when no anchor matches.
func (s *Session) ClickByText(label string) error {
	pattern := "^" + regexp.QuoteMeta(label) + "$"
	el, err := s.page.Timeout(s.opts.NavigationTimeout).ElementR("a", pattern)
	if err != nil {
		return fmt.Errorf("%q: %w", label, ErrLabelNotFound)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %q: %w", label, err)
	}
	if err := s.page.Timeout(s.opts.NavigationTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("load after clicking %q: %w", label, err)
	}
	s.pause()
	return nil
}

// HasText reports whether an anchor with the exact visible text exists.
func (s *Session) HasText(label string) bool {
	pattern := "^" + regexp.QuoteMeta(label) + "$"
	has, _, err := s.page.HasR("a", pattern)
	return err == nil && has
}

// SessionToken returns the API session cookie for the logged-in org.
func (s *Session) SessionToken() (string, error) {
	cookies, err := s.page.Cookies(nil)
	if err != nil {
		return "", fmt.Errorf("read cookies: %w", err)
	}
	for _, c := range cookies {
		if c.Name == sessionCookie {
			return c.Value, nil
		}
	}
	return "", errors.New("session cookie not present; login may not have completed")
}

// InstanceURL returns the scheme and host the session landed on after login.
func (s *Session) InstanceURL() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", fmt.Errorf("read page info: %w", err)
	}
	u, err := url.Parse(info.URL)
	if err != nil {
		return "", fmt.Errorf("parse page URL: %w", err)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	if s.browser == nil {
		return nil
	}
	return s.browser.Close()
}

// pause applies the configured inter-action delay.
func (s *Session) pause() {
	if s.opts.InterActionDelay > 0 {
		time.Sleep(s.opts.InterActionDelay)
	}
}
