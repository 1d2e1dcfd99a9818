package redis

const (
	// KeyPrefix namespaces every dawnpage key
	KeyPrefix = "dawnpage:"
	// KeyPrefixCache is the prefix for cached values
	KeyPrefixCache = KeyPrefix + "cache:"
)

// DocumentKey returns the Redis key for a stored document
func DocumentKey(key string) string {
	return KeyPrefix + key
}

// CacheKey returns the Redis key for a cached value
func CacheKey(key string) string {
	return KeyPrefixCache + key
}
