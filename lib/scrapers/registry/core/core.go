// Package core owns the authenticated HTTP session to the campus
// registry. All page fetches go through one Client; when the registry
// silently expires the session mid-crawl, the Client notices the login
// form in the response and re-authenticates before retrying the fetch.
package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"registry-harvester/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/registry/core")

// the form target that marks an unauthenticated page
const loginFormAction = "login.php"

// Authenticator produces a fresh set of session cookies. Implementations
// must respect the context deadline and fail loudly instead of hanging.
type Authenticator interface {
	Authenticate(ctx context.Context) ([]*http.Cookie, error)
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	auth    Authenticator
}

type ClientOptions struct {
	BaseUrl string
	// nil disables transparent re-authentication; an unauthenticated
	// page is then handed back to the caller as-is.
	Authenticator Authenticator
	// verification stays on unless this is set, the sandbox environment
	// serves a certificate that does not validate.
	InsecureSkipVerify bool
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)
	if opts.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	telemetry.InstrumentResty(client, "scrapers/registry/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		auth:    opts.Authenticator,
	}
	return c, nil
}

// Page is one fetched registry page. The body is kept raw, callers parse
// it on demand; a non-2xx page or a still-unauthenticated page is still
// a Page, extractors must handle absent content defensively.
type Page struct {
	Url        string
	StatusCode int
	Body       []byte
}

func (p *Page) Document() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(p.Body))
}

// IsLoginForm reports whether the page carries the login-form signature,
// meaning the session was not authenticated when it was served.
func (p *Page) IsLoginForm() bool {
	doc, err := p.Document()
	if err != nil {
		return false
	}
	form := doc.Find("form").First()
	if form.Length() == 0 {
		return false
	}
	return form.AttrOr("action", "") == loginFormAction
}

// Fetch GETs pageUrl through the session. When the response turns out to
// be the login form, the Authenticator runs once and the fetch is
// retried exactly once. A second consecutive login form is NOT retried,
// it is returned to the caller, which must treat it as a page without
// the expected content.
func (c *Client) Fetch(ctx context.Context, pageUrl string) (*Page, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	page, err := c.get(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if !page.IsLoginForm() {
		return page, nil
	}
	if c.auth == nil {
		slog.WarnContext(ctx, "not logged in and no authenticator configured", "url", pageUrl)
		return page, nil
	}

	slog.InfoContext(ctx, "session expired, logging in again", "url", pageUrl)
	cookies, err := c.auth.Authenticate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to authenticate")
		return nil, err
	}
	err = c.ReplaceSession(cookies)
	if err != nil {
		return nil, err
	}

	page, err = c.get(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch after login")
		return nil, err
	}
	if page.IsLoginForm() {
		slog.WarnContext(ctx, "still not logged in after re-authentication", "url", pageUrl)
	}
	return page, nil
}

// ReplaceSession discards the cookie jar wholesale and installs the
// given cookies against the base url.
func (c *Client) ReplaceSession(cookies []*http.Cookie) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	jar.SetCookies(c.BaseUrl, cookies)
	c.Http.SetCookieJar(jar)
	return nil
}

func (c *Client) get(ctx context.Context, pageUrl string) (*Page, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageUrl, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		slog.WarnContext(ctx, "unexpected status code", "url", pageUrl, "status", res.StatusCode())
	}
	return &Page{
		Url:        res.Request.URL,
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}, nil
}
