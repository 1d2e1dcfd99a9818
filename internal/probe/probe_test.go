package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string][]string

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	ips, ok := f[host]
	if !ok {
		return nil, errors.New("no such host")
	}
	out := make([]net.IPAddr, 0, len(ips))
	for _, s := range ips {
		out = append(out, net.IPAddr{IP: net.ParseIP(s)})
	}
	return out, nil
}

var resolver = fakeResolver{
	"public.test":  {"93.184.216.34"},
	"mixed.test":   {"93.184.216.34", "10.0.0.5"},
	"private.test": {"192.168.1.10"},
	"empty.test":   {},
}

// toServer sends every request to srv whatever the URL host is.
func toServer(srv *httptest.Server) *http.Client {
	addr := srv.Listener.Addr().String()
	return &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, network, addr)
		},
	}}
}

func TestValidate(t *testing.T) {
	p := New(WithResolver(resolver))
	tests := []struct {
		target string
		want   error
	}{
		{"", ErrInvalidURL},
		{"not a url", ErrInvalidURL},
		{"://missing", ErrInvalidURL},
		{"http://", ErrInvalidURL},
		{"ftp://public.test/file", ErrInvalidProtocol},
		{"javascript:alert(1)", ErrInvalidProtocol},
		{"http://127.0.0.1:8080/", ErrBlocked},
		{"http://[::1]/", ErrBlocked},
		{"http://private.test/", ErrBlocked},
		{"http://mixed.test/", ErrBlocked},
		{"http://empty.test/", ErrBlocked},
		{"http://unknown.test/", ErrBlocked},
		{"https://public.test/health", nil},
		{"http://8.8.8.8/", nil},
	}
	for _, tt := range tests {
		_, err := p.Validate(context.Background(), tt.target)
		if tt.want == nil {
			assert.NoError(t, err, tt.target)
			continue
		}
		assert.ErrorIs(t, err, tt.want, tt.target)
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusNoContent)
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusFound)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	p := New(WithResolver(resolver), WithHTTPClient(toServer(srv)))
	ctx := context.Background()

	res, err := p.Check(ctx, "http://public.test/ok")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusNoContent, res.Status)

	res, err = p.Check(ctx, "http://public.test/moved")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.Status, "redirects are followed")

	res, err = p.Check(ctx, "http://public.test/down")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusServiceUnavailable, res.Status)
}

func TestCheckNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := toServer(srv)
	srv.Close()

	p := New(WithResolver(resolver), WithHTTPClient(client), WithTimeout(time.Second))
	res, err := p.Check(context.Background(), "http://public.test/")
	require.NoError(t, err)
	assert.Equal(t, Result{OK: false, Status: 0, MS: res.MS}, res)
}

func TestCheckTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := New(WithResolver(resolver), WithHTTPClient(toServer(srv)), WithTimeout(50*time.Millisecond))
	res, err := p.Check(context.Background(), "http://public.test/slow")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Zero(t, res.Status)
}

func TestCheckRejectsBeforeRequest(t *testing.T) {
	p := New(WithResolver(resolver), WithHTTPClient(&http.Client{Transport: failTransport{t}}))
	_, err := p.Check(context.Background(), "http://private.test/")
	assert.ErrorIs(t, err, ErrBlocked)
}

type failTransport struct{ t *testing.T }

func (f failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.t.Fatal("no request expected")
	return nil, nil
}

func TestBlockPrivate(t *testing.T) {
	assert.ErrorIs(t, blockPrivate("tcp", "127.0.0.1:80", nil), ErrBlocked)
	assert.ErrorIs(t, blockPrivate("tcp6", "[fd00::1]:443", nil), ErrBlocked)
	assert.NoError(t, blockPrivate("tcp", "93.184.216.34:443", nil))
}

func TestGuardedClientRefusesLoopback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := GuardedClient().Get(srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlocked)
}
