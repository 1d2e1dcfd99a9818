package homepage

// ServicesFile is the shape of gethomepage's services.yaml: a list of
// single-key group maps, each holding a list of single-key service maps, so
// file order is preserved.
type ServicesFile []map[string][]map[string]ServiceEntry

// ServiceEntry holds the service fields used for a link.
type ServiceEntry struct {
	Href        string         `yaml:"href"`
	Icon        string         `yaml:"icon,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Target      string         `yaml:"target,omitempty"`
	Widget      map[string]any `yaml:"widget,omitempty"`
}

// BookmarksFile is the shape of bookmarks.yaml. Each bookmark name maps to a
// list with a single entry.
type BookmarksFile []map[string][]map[string][]BookmarkEntry

type BookmarkEntry struct {
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}
