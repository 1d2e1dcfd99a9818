// Package probe checks whether a public HTTP endpoint is up, refusing
// targets that resolve to private networks.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/utils"
)

const (
	DefaultTimeout = 8 * time.Second
	userAgent      = "dawnpage-status/1.0"
)

var (
	ErrInvalidURL      = errors.New("invalid_url")
	ErrInvalidProtocol = errors.New("invalid_protocol")
	ErrBlocked         = errors.New("blocked")
)

// Resolver looks up host addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Result is the outcome of one probe. Status is 0 when no response arrived.
type Result struct {
	OK     bool  `json:"ok"`
	Status int   `json:"status"`
	MS     int64 `json:"ms"`
}

type Prober struct {
	resolver Resolver
	client   *http.Client
	timeout  time.Duration
	now      func() time.Time
}

type Option func(*Prober)

func WithResolver(r Resolver) Option { return func(p *Prober) { p.resolver = r } }

// WithHTTPClient replaces the guarded default client.
func WithHTTPClient(c *http.Client) Option { return func(p *Prober) { p.client = c } }

func WithTimeout(d time.Duration) Option { return func(p *Prober) { p.timeout = d } }

func WithClock(now func() time.Time) Option { return func(p *Prober) { p.now = now } }

func New(opts ...Option) *Prober {
	p := &Prober{
		resolver: net.DefaultResolver,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	if p.client == nil {
		p.client = GuardedClient()
	}
	return p
}

// GuardedClient follows redirects but refuses to open a connection to a
// private address, so redirects and DNS changes cannot reach the LAN.
func GuardedClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
		Control: blockPrivate,
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = dialer.DialContext
	tr.DisableKeepAlives = true
	return &http.Client{Transport: tr}
}

func blockPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBlocked, err)
	}
	if utils.IsPrivateIP(host) {
		return fmt.Errorf("%w: %s", ErrBlocked, host)
	}
	return nil
}

// Validate parses target and checks that every address it resolves to is
// public. Errors are ErrInvalidURL, ErrInvalidProtocol or ErrBlocked.
func (p *Prober) Validate(ctx context.Context, target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidProtocol
	}
	host := u.Hostname()
	if host == "" {
		return nil, ErrInvalidURL
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if utils.IsPrivateAddr(addr) {
			return nil, ErrBlocked
		}
		return u, nil
	}

	addrs, err := p.resolver.LookupIPAddr(ctx, host)
	if err != nil || len(addrs) == 0 {
		return nil, ErrBlocked
	}
	for _, a := range addrs {
		if utils.IsPrivateNetIP(a.IP) {
			return nil, ErrBlocked
		}
	}
	return u, nil
}

// Check validates target then GETs it. Transport failures are not errors:
// they yield {ok:false,status:0}.
func (p *Prober) Check(ctx context.Context, target string) (Result, error) {
	u, err := p.Validate(ctx, target)
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := p.now()
	elapsed := func() int64 { return p.now().Sub(started).Milliseconds() }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return Result{Status: 0, MS: elapsed()}, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Status: 0, MS: elapsed()}, nil
	}
	defer utils.Close(resp.Body)

	return Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode <= 299,
		Status: resp.StatusCode,
		MS:     elapsed(),
	}, nil
}
