package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"job-listing/internal/domain/job"
	"job-listing/internal/infrastructure/jobsapi"
	"job-listing/internal/search"
)

var ErrFetchFailed = errors.New("fetch jobs failed")

// FetchError reports a failed page load. Its message is the underlying
// failure unchanged, so "HTTP error! Status: 500" reaches the view as is.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

var errNoClient = errors.New("jobs client not configured")

// DefaultPage is the only upstream page the listing ever loads.
const DefaultPage = 1

type JobListingUsecase interface {
	LoadJobs(ctx context.Context) ([]*job.Job, error)
	RefreshJobs(ctx context.Context) ([]*job.Job, error)
	Categories(jobs []*job.Job) []string
}

type JobListing struct {
	client   jobsapi.JobsClient
	cache    JobsCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewJobListingUsecase(client jobsapi.JobsClient, cache JobsCache, cacheTTL time.Duration, logger *log.Logger) *JobListing {
	return &JobListing{client: client, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// LoadJobs returns the first page of jobs, served from the cache when a
// fresh copy exists. Fetch failures are returned as *FetchError.
func (u *JobListing) LoadJobs(ctx context.Context) ([]*job.Job, error) {
	if u == nil || u.client == nil {
		return nil, &FetchError{Err: errNoClient}
	}

	key := JobsPageCacheKey(DefaultPage)
	if u.cache != nil {
		var cached []*job.Job
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Jobs] Cache HIT: %s", key)
			}
			return cached, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache MISS: %s", key)
		}
	}

	return u.fetchAndStore(ctx, key)
}

// RefreshJobs always goes upstream and overwrites the cached page.
func (u *JobListing) RefreshJobs(ctx context.Context) ([]*job.Job, error) {
	if u == nil || u.client == nil {
		return nil, &FetchError{Err: errNoClient}
	}
	return u.fetchAndStore(ctx, JobsPageCacheKey(DefaultPage))
}

func (u *JobListing) fetchAndStore(ctx context.Context, key string) ([]*job.Job, error) {
	jobs, err := u.client.FetchJobs(ctx, DefaultPage)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Fetch error: %v", err)
		}
		return nil, &FetchError{Err: err}
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, jobs, u.cacheTTL); err == nil && u.logger != nil {
			u.logger.Printf("[Jobs] Cache SET: %s", key)
		}
	}
	return jobs, nil
}

func (u *JobListing) Categories(jobs []*job.Job) []string {
	return search.ExtractCategories(jobs)
}

var _ JobListingUsecase = (*JobListing)(nil)
