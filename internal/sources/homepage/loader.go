// Package homepage imports links from gethomepage configuration files.
package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// LoadServices reads and parses a services.yaml file.
func LoadServices(path string) (ServicesFile, error) {
	var file ServicesFile
	if err := load(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	return file, nil
}

// LoadBookmarks reads and parses a bookmarks.yaml file.
func LoadBookmarks(path string) (BookmarksFile, error) {
	var file BookmarksFile
	if err := load(path, &file); err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	return file, nil
}

func load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(stripTemplateVariables(data), out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// stripTemplateVariables blanks homepage substitutions such as
// {{HOMEPAGE_VAR_ADGUARD_USER}}, which are not valid YAML scalars.
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
