package utils

import (
	"context"
	"sync"
	"time"

	"opaleka/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the last observed reachability of the backing stores,
// served verbatim on /health.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthSnapshot HealthStatus
	healthMu       sync.RWMutex
)

// GetHealthStatus returns the most recent snapshot. Zero-valued until the
// first check completes.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return healthSnapshot
}

// StartHealthMonitor checks Mongo and every Redis client on the configured
// interval, keeping an in-memory snapshot for the health endpoint. The first
// check runs immediately so /health is meaningful right after boot.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	interval := time.Duration(config.AppConfig.HealthCheckIntervalSec) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	go func() {
		checkHealth(redisClients, mongoClient)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			checkHealth(redisClients, mongoClient)
		}
	}()
}

func checkHealth(redisClients []*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisUp := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisUp = append(redisUp, client.Ping(ctx).Err() == nil)
	}
	mongoUp := mongoClient.Ping(ctx, nil) == nil

	healthMu.Lock()
	healthSnapshot = HealthStatus{
		Mongo:     mongoUp,
		Redis:     redisUp,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
