package config

import (
	"reflect"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantPanic bool
	}{
		{name: "variable set", key: "DAWN_TEST_VAR", value: "test_value"},
		{name: "variable not set", key: "DAWN_TEST_VAR_MISSING", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "unset uses default", value: "", expected: StorageFile},
		{name: "known value", value: "redis", expected: StorageRedis},
		{name: "case and spaces ignored", value: "  Memory ", expected: StorageMemory},
		{name: "unknown value uses default", value: "sqlite", expected: StorageFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DAWN_TEST_STORAGE", tt.value)
			got := oneOf("DAWN_TEST_STORAGE", StorageFile, StorageFile, StorageRedis, StorageMemory)
			if got != tt.expected {
				t.Errorf("oneOf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "start.home.lan", expected: []string{"start.home.lan"}},
		{name: "spaces and quotes", input: ` "a.lan" , 'b.lan',c.lan `, expected: []string{"a.lan", "b.lan", "c.lan"}},
		{name: "blank parts dropped", input: "a,, ,b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "30s", def: 10 * time.Second, expected: 30 * time.Second},
		{name: "invalid duration", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing uses default", value: "", def: 5 * time.Minute, expected: 5 * time.Minute},
		{name: "non-positive uses default", value: "-1s", def: time.Hour, expected: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DAWN_TEST_DURATION", tt.value)
			result := mustDuration("DAWN_TEST_DURATION", tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "1 value", value: "1", def: false, expected: true},
		{name: "invalid value", value: "maybe", def: true, expected: true},
		{name: "missing uses default", value: "", def: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DAWN_TEST_BOOL", tt.value)
			result := mustBool("DAWN_TEST_BOOL", tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.StatusTimeout != 8*time.Second {
		t.Errorf("StatusTimeout = %v, want 8s", cfg.StatusTimeout)
	}
	if cfg.RequestTimeout <= cfg.StatusTimeout {
		t.Errorf("RequestTimeout %v must exceed StatusTimeout %v", cfg.RequestTimeout, cfg.StatusTimeout)
	}
	if cfg.HomepageEnabled() {
		t.Error("homepage import should be disabled without files")
	}
}

func TestLoadRequestTimeoutRaised(t *testing.T) {
	t.Setenv("DAWN_STATUS_TIMEOUT", "20s")
	t.Setenv("DAWN_REQUEST_TIMEOUT", "10s")

	cfg := Load()
	if cfg.RequestTimeout != 22*time.Second {
		t.Errorf("RequestTimeout = %v, want 22s", cfg.RequestTimeout)
	}
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	t.Setenv("DAWN_STORAGE", "redis")
	t.Setenv("DAWN_REDIS_ADDR", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without DAWN_REDIS_ADDR")
		}
	}()
	Load()
}

func TestLoadRedisPasswordRequired(t *testing.T) {
	t.Setenv("DAWN_STORAGE", "redis")
	t.Setenv("DAWN_REDIS_ADDR", "localhost:6379")
	t.Setenv("DAWN_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("DAWN_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without DAWN_REDIS_PASSWORD")
		}
	}()
	Load()
}
