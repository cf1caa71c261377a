package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/pdfredact/internal/model"
)

const (
	// RedactPath is the path of the redaction endpoint relative to the API base.
	RedactPath = "/api/redact-pdf"

	// FileField is the multipart field name that carries the document.
	FileField = "file"

	// DefaultMaxResponseSize limits how much of a response body is read.
	DefaultMaxResponseSize = 32 * 1024 * 1024

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "pdfredact"
)

// quoteEscaper escapes a filename for the Content-Disposition header.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client submits documents to the redaction service.
// A Client is safe for concurrent use; each Redact call is one request.
type Client struct {
	// endpoint is the full URL of the redaction endpoint.
	endpoint string

	// httpClient performs the request. Built by NewClient unless supplied
	// with WithHTTPClient.
	httpClient *http.Client

	// proxyAddress is an optional SOCKS5 proxy in "host:port" format.
	proxyAddress string

	userAgent       string
	maxResponseSize int64
	logger          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProxy routes requests through the SOCKS5 proxy at address ("host:port").
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxResponseSize limits the number of response bytes read.
// Non-positive values keep the default.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseSize = n
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client. WithProxy is ignored when set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the service at apiBase, a fully-qualified
// origin such as "http://192.168.1.100:8001". timeout bounds the whole round
// trip including reading the body.
//
// No connection is made here.
func NewClient(apiBase string, timeout time.Duration, opts ...Option) (*Client, error) {
	endpoint, err := endpointURL(apiBase)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:        endpoint,
		userAgent:       DefaultUserAgent,
		maxResponseSize: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		c.httpClient, err = c.newHTTPClient(timeout)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Endpoint returns the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// endpointURL validates apiBase and appends RedactPath.
func endpointURL(apiBase string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(apiBase))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidEndpoint
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/") + RedactPath, nil
}

// IsValidProxyAddress reports whether address is in "host:port" format with a
// port between 1 and 65535.
func IsValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// newHTTPClient builds the HTTP client, dialing through the SOCKS5 proxy when
// one is configured.
func (c *Client) newHTTPClient(timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	if c.proxyAddress != "" {
		if !IsValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// Redact uploads file and classifies the response. It never returns a nil
// Outcome and never panics on bad input; a nil file is rejected locally.
func (c *Client) Redact(ctx context.Context, file *model.UploadedFile) model.Outcome {
	if file == nil {
		return model.Rejected(model.MsgNoFileSelected)
	}

	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return model.NetworkFailed(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return model.NetworkFailed(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Info("submitting document",
		"endpoint", c.endpoint,
		"file", file.Name,
		"size", file.Size(),
		"digest", file.ShortDigest(),
	)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "endpoint", c.endpoint, "error", err)
		return model.NetworkFailed(fmt.Errorf("post %s: %w", c.endpoint, err))
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, c.maxResponseSize)
	if err != nil {
		c.logger.Warn("failed to read response", "status", resp.StatusCode, "error", err)
		return model.NetworkFailed(err)
	}

	c.logger.Debug("response received",
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	outcome, info := Decode(data)
	c.logDecode(resp.StatusCode, outcome, info)
	return outcome
}

// logDecode records decode details that do not affect the outcome.
func (c *Client) logDecode(status int, outcome model.Outcome, info DecodeInfo) {
	if outcome.Kind == model.OutcomeNetworkError {
		c.logger.Warn("undecodable response", "status", status, "error", outcome.Err)
		return
	}
	if info.PaddedPages > 0 {
		c.logger.Warn("service omitted stats for some pages",
			"pages", info.Pages,
			"padded", info.PaddedPages,
		)
	}
	if info.DeclaredPages >= 0 && outcome.OK() && info.DeclaredPages != info.Pages {
		c.logger.Warn("declared page count differs from returned pages",
			"declared", info.DeclaredPages,
			"returned", info.Pages,
		)
	}
	if status >= http.StatusBadRequest {
		c.logger.Info("service answered with error status",
			"status", status,
			"outcome", outcome.Kind.String(),
		)
	}
}

// encodeMultipart builds the multipart body with one "file" part.
func encodeMultipart(file *model.UploadedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentTypeOf(file))

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// contentTypeOf guesses the part content type from the file extension.
func contentTypeOf(file *model.UploadedFile) string {
	if ct := mime.TypeByExtension(file.Ext()); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// readLimited reads at most limit bytes and fails if the body is longer.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrResponseTooLarge
	}
	return data, nil
}
