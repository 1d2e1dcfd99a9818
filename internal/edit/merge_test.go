package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

func TestMergeIsAdditive(t *testing.T) {
	seed := Seed{
		Sections: []schema.LinkSection{
			{ID: "dev", Title: "Renamed", Sort: 9},
			{ID: "media", Title: "Media", Sort: 5},
		},
		Items: []schema.LinkItem{
			{ID: "github", Title: "Overwritten?", URL: "https://example.com", SectionID: "dev"},
			{ID: "hp_1", Title: "Jellyfin", URL: "jelly.lan", SectionID: "media", Tags: []string{}},
		},
	}

	var res MergeResult
	out, err := MergeSeed(seed, &res)(schema.Default())
	require.NoError(t, err)

	assert.Equal(t, MergeResult{Sections: 1, Items: 1}, res)
	assert.Len(t, out.Links.Sections, 3)
	assert.Equal(t, "Dev", out.Links.Sections[1].Title)
	assert.Equal(t, "GitHub", out.Links.Items[0].Title)
	assert.Equal(t, "https://jelly.lan", out.Links.Items[2].URL)

	again, res2 := Merge(out, seed)
	assert.Equal(t, MergeResult{}, res2)
	assert.Equal(t, out, again)

	_, err = MergeSeed(seed, &res)(out)
	assert.ErrorIs(t, err, ErrNoChange)
	assert.Equal(t, MergeResult{}, res)
}
