package schema

// CurrentVersion is the document version written by this build.
// Nothing branches on it yet; compatibility comes from per-field defaulting.
const CurrentVersion = 1

// Theme is the color scheme of the page.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// OpenBehavior controls where a link opens.
type OpenBehavior string

const (
	OpenNewTab  OpenBehavior = "new_tab"
	OpenSameTab OpenBehavior = "same_tab"
)

// AppConfig is the single persisted document describing the start page.
//
// A value returned by Parse is always fully populated: every optional field
// has been resolved to its default.
type AppConfig struct {
	Version   int             `json:"version"`
	Theme     Theme           `json:"theme" validate:"oneof=dark light"`
	Search    SearchConfig    `json:"search"`
	Wallpaper WallpaperConfig `json:"wallpaper"`
	Effects   Effects         `json:"effects"`
	Links     Links           `json:"links"`
	Widgets   Widgets         `json:"widgets"`
}

type SearchConfig struct {
	Engine           string `json:"engine" validate:"oneof=google"`
	ShowBangTooltips bool   `json:"showBangTooltips"`
}

type WallpaperConfig struct {
	Enabled bool    `json:"enabled"`
	Source  string  `json:"source" validate:"oneof=bing"`
	Dim     float64 `json:"dim" validate:"gte=0,lte=1"`
	BlurPx  float64 `json:"blurPx" validate:"gte=0,lte=32"`
}

// Effects are the three decorative layers drawn by the client.
type Effects struct {
	AmbientCanvas bool `json:"ambientCanvas"`
	Noise         bool `json:"noise"`
	CursorGlow    bool `json:"cursorGlow"`
}

type Links struct {
	Sections []LinkSection `json:"sections" validate:"dive"`
	Items    []LinkItem    `json:"items" validate:"dive"`
}

// LinkSection groups links on the page. Sort is an ordering hint, not unique.
type LinkSection struct {
	ID    string `json:"id" validate:"min=1"`
	Title string `json:"title" validate:"min=1"`
	Sort  int    `json:"sort"`
}

// LinkItem is a single tile of the link grid.
//
// SectionID is expected to name an existing section but that is not enforced
// here; views simply never show links whose section is missing.
type LinkItem struct {
	ID          string       `json:"id" validate:"min=1"`
	Title       string       `json:"title" validate:"min=1"`
	URL         string       `json:"url" validate:"url"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags"`
	SectionID   string       `json:"sectionId" validate:"min=1"`
	Sort        int          `json:"sort"`
	Open        OpenBehavior `json:"open" validate:"oneof=new_tab same_tab"`
	Icon        Icon         `json:"icon"`
}

type Widgets struct {
	Enabled bool           `json:"enabled"`
	Items   []Widget       `json:"items" validate:"dive"`
	Layout  []WidgetLayout `json:"layout" validate:"dive"`
}

// WidgetLayout is the grid placement of the widget whose id equals I.
type WidgetLayout struct {
	I    string `json:"i" validate:"min=1"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	MinW *int   `json:"minW,omitempty"`
	MinH *int   `json:"minH,omitempty"`
}
