package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/salesbridge/dashboard-api/internal/core/ports"
)

const calendarTTL = 15 * time.Minute

// CalendarCache caches assembled billing-calendar months in Redis.
// Key format: billing:calendar:<year>:<month>
type CalendarCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewCalendarCache creates a CalendarCache wrapping the given Redis client.
func NewCalendarCache(client *redis.Client, log zerolog.Logger) *CalendarCache {
	return &CalendarCache{client: client, log: log}
}

// Get returns the cached month view, if any. Cache errors degrade to a
// miss; the calendar is always recomputable from the invoices collection.
func (c *CalendarCache) Get(ctx context.Context, year, month int) (*ports.BillingCalendar, bool) {
	raw, err := c.client.Get(ctx, c.key(year, month)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("calendar cache read failed")
		}
		return nil, false
	}

	var cal ports.BillingCalendar
	if err := json.Unmarshal(raw, &cal); err != nil {
		c.log.Warn().Err(err).Msg("calendar cache decode failed")
		return nil, false
	}
	return &cal, true
}

// Set stores the month view with a TTL.
func (c *CalendarCache) Set(ctx context.Context, cal *ports.BillingCalendar) {
	raw, err := json.Marshal(cal)
	if err != nil {
		c.log.Warn().Err(err).Msg("calendar cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(cal.Year, cal.Month), raw, calendarTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("calendar cache write failed")
	}
}

// Invalidate drops the cached view for one month.
func (c *CalendarCache) Invalidate(ctx context.Context, year, month int) {
	if err := c.client.Del(ctx, c.key(year, month)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("calendar cache invalidate failed")
	}
}

func (c *CalendarCache) key(year, month int) string {
	return fmt.Sprintf("billing:calendar:%d:%d", year, month)
}
