package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisQueueKey   = "ecotrack:queue:jobs"
	redisDelayedKey = "ecotrack:queue:delayed"
)

// RedisDriver stores the queue in Redis. Immediate jobs live on a list
// (LPUSH/BRPOP); delayed jobs sit in a sorted set scored by their run
// time and a background ticker promotes them once due.
type RedisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisDriver wraps the given client, usually the one pkg/cache holds.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb, ctx: context.Background()}
	go d.promoteDelayed()
	return d
}

// Push enqueues payload for immediate processing.
func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(d.ctx, redisQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to five seconds for the next job. A nil, nil return means
// the timeout passed with nothing queued.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// PushDelayed schedules payload to become visible after delay.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	err := d.rdb.ZAdd(d.ctx, redisDelayedKey, redis.Z{
		Score:  float64(time.Now().Add(delay).Unix()),
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

func (d *RedisDriver) promoteDelayed() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		jobs, err := d.rdb.ZRangeByScore(d.ctx, redisDelayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: now,
		}).Result()
		if err != nil || len(jobs) == 0 {
			continue
		}
		pipe := d.rdb.Pipeline()
		for _, job := range jobs {
			pipe.ZRem(d.ctx, redisDelayedKey, job)
			pipe.LPush(d.ctx, redisQueueKey, []byte(job))
		}
		pipe.Exec(d.ctx) //nolint:errcheck
	}
}
