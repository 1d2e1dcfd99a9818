package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/index"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/probe"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/wallpaper"
)

// WallpaperResolver is satisfied by *wallpaper.Resolver.
type WallpaperResolver interface {
	Resolve(ctx context.Context, day time.Time, refresh bool) wallpaper.Wallpaper
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to reach admin endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Session     *session.Session // single mutation path of the configuration
	Views       *index.ViewIndex // memoized derived views of the live configuration
	Store       *store.Store     // used for storage health only
	StorageKind string           // "file" | "redis" | "memory"

	Bing       wallpaper.Fetcher // raw Bing proxy
	Wallpapers WallpaperResolver // Bing with cache and daily fallback
	Prober     *probe.Prober     // outbound status checks

	StatusRateBurst  int // status probes allowed at once per client
	StatusRatePerMin int // status probes refilled per client per minute

	HomeURL                 string        // target of an empty search
	HomepageEnabled         bool          // homepage files configured
	HomepageReloadTrigger   chan struct{} // manual homepage import (nil if disabled)
	WallpaperRefreshTrigger chan struct{} // manual wallpaper cache refresh
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
