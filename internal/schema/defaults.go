package schema

// StorageKey is the fixed key the configuration document is persisted under.
const StorageKey = "dawnpage.config"

// Default returns a fresh copy of the first-run configuration.
func Default() AppConfig {
	return AppConfig{
		Version: CurrentVersion,
		Theme:   ThemeDark,
		Search: SearchConfig{
			Engine:           EngineGoogle,
			ShowBangTooltips: true,
		},
		Wallpaper: WallpaperConfig{
			Enabled: true,
			Source:  SourceBing,
			Dim:     0.55,
			BlurPx:  8,
		},
		Effects: Effects{
			AmbientCanvas: true,
			Noise:         true,
			CursorGlow:    true,
		},
		Links: Links{
			Sections: []LinkSection{
				{ID: "main", Title: "Main", Sort: 0},
				{ID: "dev", Title: "Dev", Sort: 1},
			},
			Items: []LinkItem{
				{
					ID:        "github",
					Title:     "GitHub",
					URL:       "https://github.com/",
					Tags:      []string{"code"},
					SectionID: "dev",
					Sort:      0,
					Open:      OpenNewTab,
					Icon:      FaviconIcon{},
				},
				{
					ID:        "gmail",
					Title:     "Gmail",
					URL:       "https://mail.google.com/",
					Tags:      []string{"mail"},
					SectionID: "main",
					Sort:      1,
					Open:      OpenNewTab,
					Icon:      FaviconIcon{},
				},
			},
		},
		Widgets: Widgets{
			Enabled: true,
			Items: []Widget{
				ClockWidget{ID: "w_clock", Title: "Time", Timezone: TimezoneLocal},
				WeatherWidget{
					ID:        "w_weather",
					Title:     "Weather",
					Latitude:  14.5995,
					Longitude: 120.9842,
					Timezone:  TimezoneAuto,
					Unit:      UnitCelsius,
				},
			},
			Layout: []WidgetLayout{
				{I: "w_clock", X: 0, Y: 0, W: 4, H: 2, MinW: IntPtr(3), MinH: IntPtr(2)},
				{I: "w_weather", X: 4, Y: 0, W: 4, H: 2, MinW: IntPtr(3), MinH: IntPtr(2)},
			},
		},
	}
}

// IntPtr is a convenience for the optional layout minimums.
func IntPtr(v int) *int { return &v }
