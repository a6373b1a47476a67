package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RateLimitKey returns the counter key for a client within a rate-limited route group.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientIP)
}

var CacheKey = NewCacheKeyStruct()
