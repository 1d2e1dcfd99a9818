// Package search resolves a submitted search-bar query to a redirect target.
package search

import (
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/utils"
)

// Bang is a query prefix that sends the rest of the query to another engine.
type Bang struct {
	Trigger string `json:"trigger"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

var bangs = []Bang{
	{Trigger: "/g", Name: "Google", URL: "https://www.google.com/search?q="},
	{Trigger: "/yt", Name: "YouTube", URL: "https://www.youtube.com/results?search_query="},
	{Trigger: "/r", Name: "Reddit", URL: "https://www.reddit.com/search/?q="},
}

// Bangs lists the supported bangs in tooltip order.
func Bangs() []Bang {
	return append([]Bang(nil), bangs...)
}

// GoogleURL is the default engine's result page for q.
func GoogleURL(q string) string {
	return bangs[0].URL + utils.EncodeURIComponent(q)
}

// matchBang splits "/yt cats" into the YouTube bang and "cats". A trigger
// must be followed by whitespace and a non-empty remainder.
func matchBang(query string) (Bang, string, bool) {
	head, rest, ok := strings.Cut(query, " ")
	if !ok {
		head, rest, ok = strings.Cut(query, "\t")
	}
	if !ok {
		return Bang{}, "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Bang{}, "", false
	}
	head = strings.ToLower(head)
	for _, b := range bangs {
		if b.Trigger == head {
			return b, rest, true
		}
	}
	return Bang{}, "", false
}
