// Package cache holds assembled eligibility reports in Redis between
// recalculations. A cache entry is only ever a copy of stored state; losing
// Redis costs latency, never correctness.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"yojana/internal/eligibility"
	"yojana/internal/platform/redis"
	id "yojana/pkg/domain"
)

const keyPrefix = "eligibility:report:"

// ReportCache is a Redis-backed eligibility.ReportCache.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs the cache. Returns nil when the client is nil so callers can
// wire it unconditionally.
func New(client *redis.Client, ttl time.Duration) *ReportCache {
	if client == nil {
		return nil
	}
	return &ReportCache{client: client, ttl: ttl}
}

func key(subjectID id.SubjectID) string {
	return keyPrefix + subjectID.String()
}

// Get returns the cached report for a subject, with a hit indicator.
func (c *ReportCache) Get(ctx context.Context, subjectID id.SubjectID) (*eligibility.Report, bool, error) {
	raw, err := c.client.Get(ctx, key(subjectID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached report: %w", err)
	}

	var report eligibility.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, true, nil
}

// Set stores a report with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, report *eligibility.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, key(report.SubjectID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

// Invalidate drops the cached report for a subject.
func (c *ReportCache) Invalidate(ctx context.Context, subjectID id.SubjectID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, key(subjectID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached report: %w", err)
	}
	return nil
}
