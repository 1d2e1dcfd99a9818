package views

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// A Collator keeps scratch buffers, so each goroutine borrows its own.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

// compareText orders two strings the way a locale-aware string comparison
// does, falling back to byte order when the collator sees them as equal.
func compareText(a, b string) int {
	c := collators.Get().(*collate.Collator)
	r := c.CompareString(a, b)
	collators.Put(c)
	if r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// normalizeTag trims a tag and puts it in NFC so visually equal tags
// aggregate together.
func normalizeTag(t string) string {
	return norm.NFC.String(strings.TrimSpace(t))
}
