package homepage

import (
	"errors"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
)

// ErrNoFiles is returned when neither file path is configured.
var ErrNoFiles = errors.New("homepage: no services or bookmarks file configured")

// Source reads the configured homepage files.
type Source struct {
	ServicesPath  string
	BookmarksPath string
}

// Enabled reports whether at least one file is configured.
func (s Source) Enabled() bool {
	return s.ServicesPath != "" || s.BookmarksPath != ""
}

// Seed loads and maps both files. A file that fails to load is reported in
// the joined error while the other one is still used.
func (s Source) Seed() (edit.Seed, error) {
	if !s.Enabled() {
		return edit.Seed{}, ErrNoFiles
	}

	m := NewMapper()
	var errs []error
	if s.ServicesPath != "" {
		file, err := LoadServices(s.ServicesPath)
		if err != nil {
			errs = append(errs, err)
		} else {
			m.AddServices(file)
		}
	}
	if s.BookmarksPath != "" {
		file, err := LoadBookmarks(s.BookmarksPath)
		if err != nil {
			errs = append(errs, err)
		} else {
			m.AddBookmarks(file)
		}
	}
	return m.Seed(), errors.Join(errs...)
}
