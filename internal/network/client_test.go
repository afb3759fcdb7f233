package network

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/hirenova/internal/models"
)

type statusDoer struct {
	status int
	calls  atomic.Int64
}

func (d *statusDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.calls.Add(1)
	return &fhttp.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func newProxiedClient(t *testing.T, doers map[string]*statusDoer, order ...string) *Client {
	t.Helper()
	rotator, err := NewRotator(order, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	client := &Client{
		rotator:    rotator,
		proxied:    map[string]Doer{},
		userAgents: []string{"hirenova-test"},
		rand:       rand.New(rand.NewSource(1)),
	}
	for proxy, doer := range doers {
		client.proxied[proxy] = doer
	}
	return client
}

func newRequest(t *testing.T) *fhttp.Request {
	t.Helper()
	req, err := fhttp.NewRequest(fhttp.MethodGet, "http://example.test/search-jobs", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	return req
}

func TestNewClientBuildsRotatorFromProxies(t *testing.T) {
	client, err := NewClient(nil, models.ClientConfig{Proxies: []string{"http://127.0.0.1:8080"}})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.rotator == nil || client.rotator.Available() != 1 {
		t.Fatalf("expected a rotator with one proxy")
	}

	if _, err := NewClient(nil, models.ClientConfig{Proxies: []string{"://bad"}}); err == nil {
		t.Fatalf("NewClient() with invalid proxy error = nil")
	}
}

func TestNewClientUserAgents(t *testing.T) {
	client, err := NewClient(nil, models.ClientConfig{UserAgents: []string{"hirenova-test"}, Timeout: -time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.rotator != nil {
		t.Fatalf("unexpected rotator without proxies")
	}
	if got := client.randomUA(); got != "hirenova-test" {
		t.Fatalf("randomUA() = %q", got)
	}

	defaults, err := NewClient(nil, models.ClientConfig{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if len(defaults.userAgents) != len(userAgents) {
		t.Fatalf("default user agents not applied")
	}
}

func TestNewClientBuildsTransportPerProxy(t *testing.T) {
	client, err := NewClient(nil, models.ClientConfig{Proxies: []string{"http://127.0.0.1:8080", "http://127.0.0.1:8081", "http://127.0.0.1:8080"}})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if len(client.proxied) != 2 {
		t.Fatalf("transports = %d, want 2", len(client.proxied))
	}
	if available, total := client.Available(); available != 3 || total != 3 {
		t.Fatalf("Available() = %d of %d, want 3 of 3", available, total)
	}
}

func TestDoConcurrentRequestsSpreadOverProxies(t *testing.T) {
	a := &statusDoer{status: fhttp.StatusOK}
	b := &statusDoer{status: fhttp.StatusOK}
	client := newProxiedClient(t, map[string]*statusDoer{"http://a:1": a, "http://b:1": b}, "http://a:1", "http://b:1")

	const workers, perWorker = 8, 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				req, err := fhttp.NewRequest(fhttp.MethodGet, "http://example.test/search-jobs", nil)
				if err != nil {
					errs <- err
					return
				}
				resp, err := client.Do(req)
				if err != nil {
					errs <- err
					return
				}
				if got := resp.Request.Header.Get("User-Agent"); got != "hirenova-test" {
					errs <- errors.New("user agent not set: " + got)
				}
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Do() error = %v", err)
	}

	if a.calls.Load() != workers*perWorker/2 || b.calls.Load() != workers*perWorker/2 {
		t.Fatalf("calls a=%d b=%d, want %d each", a.calls.Load(), b.calls.Load(), workers*perWorker/2)
	}
}

func TestDoBansTheProxyThatAnswered(t *testing.T) {
	limited := &statusDoer{status: fhttp.StatusTooManyRequests}
	ok := &statusDoer{status: fhttp.StatusOK}
	client := newProxiedClient(t, map[string]*statusDoer{"http://a:1": limited, "http://b:1": ok}, "http://a:1", "http://b:1")

	for i := 0; i < 4; i++ {
		resp, err := client.Do(newRequest(t))
		if err != nil {
			t.Fatalf("Do() #%d error = %v", i, err)
		}
		resp.Body.Close()
	}
	if limited.calls.Load() != 1 || ok.calls.Load() != 3 {
		t.Fatalf("calls limited=%d ok=%d, want 1 and 3", limited.calls.Load(), ok.calls.Load())
	}
	if available, total := client.Available(); available != 1 || total != 2 {
		t.Fatalf("Available() = %d of %d, want 1 of 2", available, total)
	}
}

func TestDoAllProxiesBanned(t *testing.T) {
	a := &statusDoer{status: fhttp.StatusForbidden}
	b := &statusDoer{status: fhttp.StatusTooManyRequests}
	client := newProxiedClient(t, map[string]*statusDoer{"http://a:1": a, "http://b:1": b}, "http://a:1", "http://b:1")

	for i := 0; i < 2; i++ {
		resp, err := client.Do(newRequest(t))
		if err != nil {
			t.Fatalf("Do() #%d error = %v", i, err)
		}
		resp.Body.Close()
	}
	if _, err := client.Do(newRequest(t)); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Do() error = %v, want ErrNoProxies", err)
	}
	if a.calls.Load()+b.calls.Load() != 2 {
		t.Fatalf("banned proxies were used: a=%d b=%d", a.calls.Load(), b.calls.Load())
	}
}
