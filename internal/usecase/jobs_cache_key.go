package usecase

import (
	"context"
	"strconv"
	"time"
)

type JobsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const jobsPageKeyPrefix = "jobs:page:"

// JobsPageCacheKey is the cache key of one upstream page. Criteria never
// take part in the key since filtering happens after the fetch.
func JobsPageCacheKey(page int) string {
	if page <= 0 {
		page = 1
	}
	return jobsPageKeyPrefix + strconv.Itoa(page)
}
