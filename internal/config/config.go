package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by DAWN_STORAGE.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, must exceed StatusTimeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Storage string // "file" | "redis" | "memory"
	DataDir string // directory of the file backend

	// Optional gethomepage files imported as links
	ServicesFile     string
	BookmarksFile    string
	ReloadInterval   time.Duration // homepage re-import interval (default: 24h)
	HomeURL          string        // where an empty search goes (default: "/")
	WallpaperEvery   time.Duration // wallpaper cache warm-up interval (default: 1h)
	WallpaperTTL     time.Duration // lifetime of a cached daily wallpaper
	BingFeedURL      string        // image-of-the-day feed
	StatusTimeout    time.Duration // per-probe deadline of /api/status (default: 8s)
	StatusRateBurst  int           // probes allowed at once per client
	StatusRatePerMin int           // probes refilled per client per minute

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DAWN_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DAWN_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("DAWN_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("DAWN_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DAWN_PRETTY_LOG", true),

		// Storage
		Storage: oneOf("DAWN_STORAGE", StorageFile, StorageFile, StorageRedis, StorageMemory),
		DataDir: getenv("DAWN_DATA_DIR", "/data"),

		// Homepage import
		ServicesFile:   getenv("DAWN_HOMEPAGE_SERVICES_FILE", ""),
		BookmarksFile:  getenv("DAWN_HOMEPAGE_BOOKMARKS_FILE", ""),
		ReloadInterval: mustDuration("DAWN_RELOAD_INTERVAL", 24*time.Hour),
		HomeURL:        getenv("DAWN_HOME_URL", "/"),

		// Proxies
		WallpaperEvery:   mustDuration("DAWN_WALLPAPER_REFRESH_INTERVAL", time.Hour),
		WallpaperTTL:     mustDuration("DAWN_WALLPAPER_CACHE_TTL", 36*time.Hour),
		BingFeedURL:      getenv("DAWN_BING_FEED_URL", "https://www.bing.com/HPImageArchive.aspx?format=js&idx=0&n=1&mkt=en-US"),
		StatusTimeout:    mustDuration("DAWN_STATUS_TIMEOUT", 8*time.Second),
		StatusRateBurst:  getenvInt("DAWN_STATUS_RATE_BURST", 20),
		StatusRatePerMin: getenvInt("DAWN_STATUS_RATE_PER_MIN", 60),

		// Redis settings
		RedisAddr:             getenv("DAWN_REDIS_ADDR", ""),
		RedisUser:             getenv("DAWN_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("DAWN_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("DAWN_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("DAWN_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DAWN_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("DAWN_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DAWN_TRUST_PROXY", false),
	}

	if cfg.Storage == StorageRedis {
		cfg.RedisAddr = requireEnv("DAWN_REDIS_ADDR")
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: DAWN_REDIS_PASSWORD is required when DAWN_REDIS_PASSWORD_REQUIRED=true")
		}
	}

	if cfg.RequestTimeout <= cfg.StatusTimeout {
		cfg.RequestTimeout = cfg.StatusTimeout + 2*time.Second
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// HomepageEnabled reports whether any homepage file is configured.
func (c *Config) HomepageEnabled() bool {
	return c.ServicesFile != "" || c.BookmarksFile != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// oneOf returns the lowercased value of key when it is one of allowed,
// def otherwise.
func oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	if v != "" {
		log.Printf("[WARN] %s=%q is not one of %v, using %q\n", key, v, allowed, def)
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
