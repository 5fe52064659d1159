// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 1 * time.Hour

// QuoteCachePrefix is the prefix used for cached shipment distance quotes.
const QuoteCachePrefix = "quote:"

// QuoteCacheTTL is the time-to-live for cached shipment distance quotes.
const QuoteCacheTTL = 10 * time.Minute
