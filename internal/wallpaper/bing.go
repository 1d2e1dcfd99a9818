// Package wallpaper looks up the daily background image.
package wallpaper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/utils"
)

const (
	// BingFeedURL is the image-of-the-day archive, newest entry only.
	BingFeedURL = "https://www.bing.com/HPImageArchive.aspx?format=js&idx=0&n=1&mkt=en-US"
	bingOrigin  = "https://www.bing.com"
	userAgent   = "dawnpage/1.0"

	maxFeedBytes = 1 << 20
)

var (
	// ErrUpstream means the feed could not be reached or answered non-2xx.
	ErrUpstream = errors.New("wallpaper: upstream request failed")
	// ErrBadResponse means the feed answered without a usable image URL.
	ErrBadResponse = errors.New("wallpaper: bad upstream response")
)

// Image is a resolved wallpaper URL with optional attribution.
type Image struct {
	URL       string `json:"url"`
	Copyright string `json:"copyright,omitempty"`
}

type bingFeed struct {
	Images []struct {
		URL       string `json:"url"`
		Copyright string `json:"copyright"`
	} `json:"images"`
}

// Client fetches the Bing image of the day.
type Client struct {
	http    *http.Client
	feedURL string
}

type ClientOption func(*Client)

// WithFeedURL points the client at another feed, e.g. a test server.
func WithFeedURL(u string) ClientOption {
	return func(c *Client) { c.feedURL = u }
}

// NewClient returns a Client using httpClient, or a 10s-timeout client when nil.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	c := &Client{http: httpClient, feedURL: BingFeedURL}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchBing returns the first image of the feed. Relative image paths are
// made absolute against www.bing.com.
func (c *Client) FetchBing(ctx context.Context) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return Image{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Image{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var feed bingFeed
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&feed); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(feed.Images) == 0 || feed.Images[0].URL == "" {
		return Image{}, ErrBadResponse
	}

	first := feed.Images[0]
	u := first.URL
	if !strings.HasPrefix(u, "http") {
		u = bingOrigin + u
	}
	return Image{URL: u, Copyright: first.Copyright}, nil
}
