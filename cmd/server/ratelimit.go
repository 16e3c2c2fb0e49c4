package main

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/fitrank/internal/database"
	"github.com/HammerMeetNail/fitrank/internal/middleware"
)

// Probes and scrapes bypass rate limiting.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/live":    true,
	"/metrics": true,
}

func apiClientKey(trustedProxies int) middleware.KeyFunc {
	clientIP := middleware.ClientIPKey(trustedProxies)
	return func(r *http.Request) string {
		if unlimitedPaths[r.URL.Path] {
			return ""
		}
		return clientIP(r)
	}
}

func redisClient(db *database.RedisDB) *redis.Client {
	if db == nil {
		return nil
	}
	return db.Client
}
