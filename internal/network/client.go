package network

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/jimezsa/hirenova/internal/models"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultBanDuration = 10 * time.Minute
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Doer is the part of Client that request builders depend on.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Client sends requests through a Chrome-profile transport. With a
// rotator, each proxy has its own transport so concurrent requests never
// switch the proxy under one another.
type Client struct {
	direct     Doer
	proxied    map[string]Doer
	rotator    *Rotator
	userAgents []string

	mu   sync.Mutex
	rand *rand.Rand
}

// NewClient builds a Chrome-profile client. A zero Timeout falls back to
// DefaultTimeout; a negative one disables the client timeout. Without a
// rotator, one is built from cfg.Proxies when any are given.
func NewClient(rotator *Rotator, cfg models.ClientConfig) (*Client, error) {
	if rotator == nil && len(cfg.Proxies) > 0 {
		var err error
		rotator, err = NewRotator(cfg.Proxies, DefaultBanDuration)
		if err != nil {
			return nil, err
		}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		rotator:    rotator,
		userAgents: append([]string{}, cfg.UserAgents...),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if len(client.userAgents) == 0 {
		client.userAgents = append(client.userAgents, userAgents...)
	}

	if rotator == nil {
		direct, err := newTransport(timeout, "")
		if err != nil {
			return nil, err
		}
		client.direct = direct
		return client, nil
	}

	client.proxied = make(map[string]Doer, len(rotator.proxies))
	for _, proxy := range rotator.proxies {
		key := proxy.String()
		if _, ok := client.proxied[key]; ok {
			continue
		}
		transport, err := newTransport(timeout, key)
		if err != nil {
			return nil, fmt.Errorf("proxy %s: %w", key, err)
		}
		client.proxied[key] = transport
	}
	return client, nil
}

func newTransport(timeout time.Duration, proxy string) (tls_client.HttpClient, error) {
	jar, _ := fhttpcookiejar.New(nil)

	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithCookieJar(jar),
	}
	if timeout > 0 {
		options = append(options, tls_client.WithTimeoutSeconds(int(timeout.Seconds())))
	}
	if proxy != "" {
		options = append(options, tls_client.WithProxyUrl(proxy))
	}
	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
}

// Do sends req. With proxies configured it returns ErrNoProxies when all
// of them are banned rather than sending through a banned one.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}

	if c.rotator == nil {
		return c.direct.Do(req)
	}

	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}
	transport, ok := c.proxied[proxy.String()]
	if !ok {
		return nil, fmt.Errorf("no transport for proxy %s", proxy.Redacted())
	}

	resp, err := transport.Do(req)
	if err != nil {
		return nil, err
	}
	c.rotator.Report(proxy, resp.StatusCode)
	return resp, nil
}

// Available reports how many proxies are usable now and how many are
// configured. Both are zero without a rotator.
func (c *Client) Available() (available, total int) {
	if c.rotator == nil {
		return 0, 0
	}
	return c.rotator.Available(), len(c.rotator.proxies)
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
