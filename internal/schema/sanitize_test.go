package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withStatus() AppConfig {
	c := Default()
	c.Widgets.Items = append(c.Widgets.Items, StatusWidget{ID: "w_status", Title: "Status", IntervalSeconds: 60, Targets: []StatusTarget{}})
	c.Widgets.Layout = append(c.Widgets.Layout,
		WidgetLayout{I: "w_status", X: 8, Y: 0, W: 4, H: 2},
		WidgetLayout{I: "ghost", X: 0, Y: 2, W: 2, H: 2},
	)
	return c
}

func TestSanitizeRemovesStatusAndOrphans(t *testing.T) {
	out := Sanitize(withStatus())

	for _, w := range out.Widgets.Items {
		assert.NotEqual(t, WidgetStatus, w.Kind())
	}
	ids := []string{}
	for _, l := range out.Widgets.Layout {
		ids = append(ids, l.I)
	}
	assert.Equal(t, []string{"w_clock", "w_weather"}, ids)
}

func TestSanitizeIdempotent(t *testing.T) {
	for name, c := range map[string]AppConfig{
		"default":     Default(),
		"with status": withStatus(),
		"empty":       {},
	} {
		t.Run(name, func(t *testing.T) {
			once := Sanitize(c)
			assert.Equal(t, once, Sanitize(once))
		})
	}
}

func TestSanitizeDoesNotModifyInput(t *testing.T) {
	in := withStatus()
	_ = Sanitize(in)
	assert.Len(t, in.Widgets.Items, 3)
	assert.Len(t, in.Widgets.Layout, 4)
}
