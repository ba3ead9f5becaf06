package storefront

import (
	"bytes"
	"catalogwatch/lib/restyutil"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	Selectors Selectors
	// defaults to 30 seconds
	Timeout   time.Duration
	UserAgent string
	// if set, request/response pairs are dumped to it in debug mode
	InstrumentOutput restyutil.InstrumentOutput
}

type Client struct {
	http      *resty.Client
	selectors Selectors
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		http:      client,
		selectors: opts.Selectors.WithDefaults(),
	}, nil
}

// FetchCatalog downloads a listing page and extracts its products. The
// returned error covers the page as a whole, malformed tiles are reported
// in ExtractResult.Failures.
func (c *Client) FetchCatalog(ctx context.Context, pageUrl string) (ExtractResult, error) {
	ctx, span := tracer.Start(ctx, "FetchCatalog")
	defer span.End()

	link, err := url.Parse(pageUrl)
	if err != nil {
		return ExtractResult{}, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("accept", "text/html").
		Get(link.String())
	if err != nil {
		return ExtractResult{}, fmt.Errorf("fetch %s: %w", pageUrl, err)
	}
	if res.StatusCode() != http.StatusOK {
		return ExtractResult{}, fmt.Errorf("fetch %s: %w: %d", pageUrl, ErrUnexpectedStatus, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return ExtractResult{}, fmt.Errorf("parse %s: %w", pageUrl, err)
	}

	return ParseCatalog(ctx, doc, c.selectors), nil
}
