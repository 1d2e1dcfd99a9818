package search

import (
	"strings"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/utils"
	"github.com/MrSnakeDoc/dawnpage/internal/views"
)

// Kind says how a query was resolved.
type Kind string

const (
	KindHome Kind = "home"
	KindBang Kind = "bang"
	KindLink Kind = "link"
	KindWeb  Kind = "web"
)

// Target is where a submitted query should send the browser.
type Target struct {
	Kind  Kind
	URL   string
	Bang  string
	Link  *schema.LinkItem
	Score float64
}

// Resolve interprets a search-bar submission.
//
//   - "" goes home
//   - "/yt cats" uses the YouTube bang
//   - "@git" opens the best matching link, or searches the web for "git"
//   - anything else is a Google search
func Resolve(query, home string, items []schema.LinkItem) Target {
	q := strings.TrimSpace(query)
	if q == "" {
		return Target{Kind: KindHome, URL: home}
	}

	if b, rest, ok := matchBang(q); ok {
		return Target{Kind: KindBang, URL: b.URL + utils.EncodeURIComponent(rest), Bang: b.Trigger}
	}

	if strings.HasPrefix(q, "@") {
		text := strings.TrimSpace(strings.TrimPrefix(q, "@"))
		if text == "" {
			return Target{Kind: KindHome, URL: home}
		}
		if ranked := RankLinks(text, views.SortLinks(items)); len(ranked) > 0 {
			best := ranked[0]
			return Target{Kind: KindLink, URL: best.Link.URL, Link: &best.Link, Score: best.Score}
		}
		return Target{Kind: KindWeb, URL: GoogleURL(text)}
	}

	return Target{Kind: KindWeb, URL: GoogleURL(q)}
}
