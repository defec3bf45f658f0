// Package cache is a thin JSON cache over Redis. All keys are
// namespaced under "ecotrack:". When Redis is unreachable the cache
// degrades to a no-op so the API keeps serving from the database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecotrackhq/ecotrack/config"
)

const prefix = "ecotrack:"

var RDB *redis.Client
var Ctx = context.Background()

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Get unmarshals the cached value for key into dest. Returns false on
// miss, connection failure, or decode failure.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, prefix+key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores value under key for ttl. A nil client is a no-op.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, prefix+key, data, ttl).Err()
}

// Forget removes key from the cache.
func Forget(key string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, prefix+key).Err()
}
