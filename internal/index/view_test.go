package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/store/memory"
)

func attached(t *testing.T) (*ViewIndex, *session.Session) {
	t.Helper()
	s := session.New(store.New(memory.New(), logger.NewNop()), logger.NewNop())
	idx := NewViewIndex()
	idx.Attach(s)
	s.Init(context.Background())
	return idx, s
}

func TestViewIndexBeforeCommit(t *testing.T) {
	idx := NewViewIndex()
	assert.False(t, idx.Ready())
	_, ok := idx.Config()
	assert.False(t, ok)
	assert.Empty(t, idx.Filtered("", ""))
}

func TestViewIndexMirrorsSession(t *testing.T) {
	idx, s := attached(t)
	require.True(t, idx.Ready())
	assert.Equal(t, s.Revision(), idx.Revision())

	gh, ok := idx.Link("github")
	require.True(t, ok)
	assert.Equal(t, "GitHub", gh.Title)

	_, ok = idx.Section("dev")
	assert.True(t, ok)
	w, ok := idx.Widget("w_clock")
	require.True(t, ok)
	assert.Equal(t, schema.WidgetClock, w.Kind())

	assert.Equal(t, []string{"main", "dev"}, sectionIDs(idx.Sections()))

	_, err := s.Update(context.Background(), edit.DeleteLink("github"))
	require.NoError(t, err)

	_, ok = idx.Link("github")
	assert.False(t, ok)
	assert.Equal(t, s.Revision(), idx.Revision())
	assert.Equal(t, s.LastSavedAt(), idx.LastSavedAt())
}

func TestViewIndexMemo(t *testing.T) {
	idx, s := attached(t)

	first := idx.Filtered("git", "")
	require.Len(t, first, 1)
	idx.Filtered("git", "")
	idx.Grouped("git", "", false)
	assert.Equal(t, 1, idx.computed)

	idx.Filtered("mail", "")
	assert.Equal(t, 2, idx.computed)

	_, err := s.Update(context.Background(), edit.AddLink(schema.LinkItem{
		Title: "Gitea", URL: "git.lan", SectionID: "dev",
	}))
	require.NoError(t, err)

	assert.Len(t, idx.Filtered("git", ""), 2)
	assert.Equal(t, 3, idx.computed)
}

func TestViewIndexGrouped(t *testing.T) {
	idx, _ := attached(t)

	all := idx.Grouped("github", "", true)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Items)

	nonEmpty := idx.Grouped("github", "", false)
	require.Len(t, nonEmpty, 1)
	assert.Equal(t, "dev", nonEmpty[0].Section.ID)
}

func TestViewIndexIgnoresStaleCommit(t *testing.T) {
	idx, _ := attached(t)
	rev := idx.Revision()

	idx.Apply(session.Commit{Config: schema.AppConfig{}, Revision: rev})
	_, ok := idx.Link("github")
	assert.True(t, ok)
}

func TestViewIndexTags(t *testing.T) {
	idx, _ := attached(t)
	tags := idx.Tags()
	require.Len(t, tags, 2)
	assert.Equal(t, "code", tags[0].Tag)
}

func sectionIDs(sections []schema.LinkSection) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.ID)
	}
	return out
}
