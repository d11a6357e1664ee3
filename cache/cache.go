// Package cache keeps a short-lived Redis copy of the free-slot listing, the
// one read endpoint hot enough to be worth it. Every mutation that can change
// availability bumps a version counter, which orphans all cached listings at
// once instead of tracking individual keys.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turnosapp/backend/models"
)

const (
	versionKey = "disponibles:version"
	defaultTTL = 60 * time.Second
)

// Availability caches free-slot listings. A nil receiver or a zero value is a
// disabled cache: every method is a no-op and every lookup misses.
type Availability struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr returns a disabled cache so
// the server runs without Redis in development.
func New(addr string) *Availability {
	if addr == "" {
		return &Availability{}
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	return &Availability{client: client, ttl: defaultTTL}
}

func (a *Availability) Enabled() bool {
	return a != nil && a.client != nil
}

// Ping verifies the connection. Disabled caches always pass.
func (a *Availability) Ping(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	return a.client.Ping(ctx).Err()
}

func (a *Availability) key(ctx context.Context, date models.Date, employeeID *uuid.UUID) (string, error) {
	version, err := a.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	scope := "todos"
	if employeeID != nil {
		scope = employeeID.String()
	}
	return fmt.Sprintf("disponibles:v%d:%s:%s", version, date, scope), nil
}

// GetSlots returns the cached listing for a date and optional employee. The
// second return reports a hit; any Redis failure counts as a miss.
func (a *Availability) GetSlots(ctx context.Context, date models.Date, employeeID *uuid.UUID) ([]models.AvailabilitySlot, bool) {
	if !a.Enabled() {
		return nil, false
	}
	key, err := a.key(ctx, date, employeeID)
	if err != nil {
		return nil, false
	}
	raw, err := a.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []models.AvailabilitySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// SetSlots stores a listing under the current version. Failures are ignored;
// the cache is advisory.
func (a *Availability) SetSlots(ctx context.Context, date models.Date, employeeID *uuid.UUID, slots []models.AvailabilitySlot) {
	if !a.Enabled() {
		return
	}
	key, err := a.key(ctx, date, employeeID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	a.client.Set(ctx, key, raw, a.ttl)
}

// Invalidate drops every cached listing by bumping the version. Old entries
// expire on their own TTL.
func (a *Availability) Invalidate(ctx context.Context) {
	if !a.Enabled() {
		return
	}
	a.client.Incr(ctx, versionKey)
}
