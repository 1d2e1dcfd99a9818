package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

func TestApplySettingsPartial(t *testing.T) {
	light := schema.ThemeLight
	off := false
	dim := 0.2

	out := apply(t, ApplySettings(SettingsPatch{
		Theme:     &light,
		Wallpaper: &WallpaperPatch{Dim: &dim},
		Effects:   &EffectsPatch{Noise: &off},
	}))

	def := schema.Default()
	assert.Equal(t, schema.ThemeLight, out.Theme)
	assert.Equal(t, 0.2, out.Wallpaper.Dim)
	assert.Equal(t, def.Wallpaper.BlurPx, out.Wallpaper.BlurPx)
	assert.True(t, out.Wallpaper.Enabled)
	assert.False(t, out.Effects.Noise)
	assert.True(t, out.Effects.CursorGlow)
	assert.Equal(t, def.Search, out.Search)
	assert.Equal(t, def.Links, out.Links)
}

func TestApplySettingsEmptyPatch(t *testing.T) {
	assert.Equal(t, schema.Default(), apply(t, ApplySettings(SettingsPatch{})))
}
