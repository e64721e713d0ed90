package capitoltrades

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"tradewatch-backend/lib/restyutil"
	"tradewatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/capitoltrades")

var httpCaptureOutput restyutil.CaptureOutput

// SetHttpCaptureOutput dumps raw exchanges of clients created after
// the call, for debugging pages that render differently than expected.
func SetHttpCaptureOutput(out restyutil.CaptureOutput) {
	httpCaptureOutput = out
}

// BaseUrl is the public trades listing.
const BaseUrl = "https://www.capitoltrades.com/trades"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

type Client struct {
	BaseUrl    string
	Http       *resty.Client
	RetryDelay time.Duration
}

type ClientOptions struct {
	// BaseUrl overrides the public listing URL, mostly for tests.
	BaseUrl string
	// RetryDelay overrides the pause before the single shell refetch.
	RetryDelay time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = BaseUrl
	}
	retryDelay := opts.RetryDelay
	if retryDelay == 0 {
		retryDelay = 1500 * time.Millisecond
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetHeader("cache-control", "no-cache")
	client.SetHeader("pragma", "no-cache")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/capitoltrades/http")
	restyutil.CaptureTraffic(client, httpCaptureOutput)

	return &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		RetryDelay: retryDelay,
	}, nil
}

// Fetch issues a single GET. A non-2xx status or transport failure is
// fatal for the call, retrying is the caller's concern.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if res.IsError() {
		err := fmt.Errorf("unexpected status: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return res.String(), nil
}
