package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"clinicbook/models"
	"clinicbook/utils"
)

// Cache stores resolved availability in Redis per strategy and date.
//
// Every date has a generation counter. Entries are keyed by the generation
// they were computed under, and Invalidate bumps the counter, so a result
// computed before a booking can never be served after it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns a cache whose entries expire after ttl.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(strategy, date string, gen int64) string {
	return utils.AvailabilityCachePrefix + strategy + ":" + strconv.FormatInt(gen, 10) + ":" + date
}

func (c *Cache) genKey(date string) string {
	return utils.AvailabilityGenerationPrefix + date
}

// genTTL keeps a counter alive longer than any entry tagged with it. A
// counter that lapses restarts at zero only once all its entries are gone.
func (c *Cache) genTTL() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	return 2 * c.ttl
}

// Generation returns the current generation of date; zero if never bumped.
func (c *Cache) Generation(ctx context.Context, date string) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("availability cache generation: %w", err)
	}
	return gen, nil
}

// Get reports a miss with ok=false and a nil error.
func (c *Cache) Get(ctx context.Context, strategy, date string, gen int64) ([]models.Availability, bool, error) {
	data, err := c.client.Get(ctx, c.key(strategy, date, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("availability cache get: %w", err)
	}
	var result []models.Availability
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("availability cache decode: %w", err)
	}
	return result, true, nil
}

// Set stores result under gen. It stores nothing and reports false when the
// date was invalidated after gen was read.
func (c *Cache) Set(ctx context.Context, strategy, date string, gen int64, result []models.Availability) (bool, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return false, fmt.Errorf("availability cache encode: %w", err)
	}

	genKey := c.genKey(date)
	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(strategy, date, gen), data, c.ttl)
			if ttl := c.genTTL(); ttl > 0 {
				pipe.Expire(ctx, genKey, ttl)
			}
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("availability cache set: %w", err)
	}
	return stored, nil
}

// Invalidate retires every cached result for date.
func (c *Cache) Invalidate(ctx context.Context, date string) error {
	genKey := c.genKey(date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		if ttl := c.genTTL(); ttl > 0 {
			pipe.Expire(ctx, genKey, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("availability cache invalidate: %w", err)
	}
	return nil
}
