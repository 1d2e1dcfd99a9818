package edit

import (
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
)

// SettingsPatch carries the toggles of the settings panel. Nil fields are
// left as they are; range checks happen when the session revalidates.
type SettingsPatch struct {
	Theme            *schema.Theme   `json:"theme,omitempty"`
	ShowBangTooltips *bool           `json:"showBangTooltips,omitempty"`
	Wallpaper        *WallpaperPatch `json:"wallpaper,omitempty"`
	Effects          *EffectsPatch   `json:"effects,omitempty"`
	WidgetsEnabled   *bool           `json:"widgetsEnabled,omitempty"`
}

type WallpaperPatch struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Dim     *float64 `json:"dim,omitempty"`
	BlurPx  *float64 `json:"blurPx,omitempty"`
}

type EffectsPatch struct {
	AmbientCanvas *bool `json:"ambientCanvas,omitempty"`
	Noise         *bool `json:"noise,omitempty"`
	CursorGlow    *bool `json:"cursorGlow,omitempty"`
}

func ApplySettings(p SettingsPatch) session.Updater {
	return func(c schema.AppConfig) (schema.AppConfig, error) {
		setIf(&c.Theme, p.Theme)
		setIf(&c.Search.ShowBangTooltips, p.ShowBangTooltips)
		setIf(&c.Widgets.Enabled, p.WidgetsEnabled)

		if w := p.Wallpaper; w != nil {
			setIf(&c.Wallpaper.Enabled, w.Enabled)
			setIf(&c.Wallpaper.Dim, w.Dim)
			setIf(&c.Wallpaper.BlurPx, w.BlurPx)
		}
		if e := p.Effects; e != nil {
			setIf(&c.Effects.AmbientCanvas, e.AmbientCanvas)
			setIf(&c.Effects.Noise, e.Noise)
			setIf(&c.Effects.CursorGlow, e.CursorGlow)
		}
		return c, nil
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
