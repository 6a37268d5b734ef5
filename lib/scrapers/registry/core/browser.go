package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var ErrAuthTimeout = fmt.Errorf("timed out waiting for interactive login")

// the operator types their credentials into a visible browser window,
// this is the element that appears once the registry considers them
// logged in
const defaultLoginMarker = "[ Logout ]"

const defaultLoginTimeout = time.Minute * 3

// BrowserAuthenticator drives a real browser window to the registry
// login page and waits for the operator to complete the login form.
// Credentials are never scripted; the only output is the session cookies
// the registry hands the browser.
type BrowserAuthenticator struct {
	LoginUrl string
	// link text that marks a logged-in page, defaults to "[ Logout ]"
	Marker string
	// how long to wait for the operator before giving up,
	// defaults to 3 minutes
	Timeout time.Duration
}

func (a BrowserAuthenticator) Authenticate(ctx context.Context) ([]*http.Cookie, error) {
	marker := a.Marker
	if marker == "" {
		marker = defaultLoginMarker
	}
	timeout := a.Timeout
	if timeout == 0 {
		timeout = defaultLoginTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	controlUrl, err := launcher.New().Headless(false).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlUrl).Context(ctx)
	err = browser.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	defer browser.Close()

	slog.InfoContext(ctx, "waiting for interactive login", "url", a.LoginUrl)

	page, err := browser.Page(proto.TargetCreateTarget{URL: a.LoginUrl})
	if err != nil {
		return nil, fmt.Errorf("open login page: %w", err)
	}

	_, err = page.ElementR("a", regexp.QuoteMeta(marker))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrAuthTimeout
		}
		return nil, fmt.Errorf("wait for login marker: %w", err)
	}
	slog.InfoContext(ctx, "logged in")

	browserCookies, err := page.Cookies(nil)
	if err != nil {
		return nil, fmt.Errorf("read session cookies: %w", err)
	}

	cookies := make([]*http.Cookie, len(browserCookies))
	for i, c := range browserCookies {
		cookies[i] = &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		}
	}
	return cookies, nil
}
