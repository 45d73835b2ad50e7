package common

const (
	// Monitored service names. The health monitor keys its state on these.
	ServiceDatabase   = "database"
	ServiceEmail      = "email"
	ServiceAuth       = "auth"
	ServiceMarketData = "market-data"

	// RedisKeyQuote is the cache key for a ticker quote, e.g. "quote:VFV.TO".
	RedisKeyQuote = "quote:%s"
)
