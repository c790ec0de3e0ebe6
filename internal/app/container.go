package app

import (
	"context"
	"log"
	"os"

	"job-listing/internal/config"
	"job-listing/internal/infrastructure/cache"
	"job-listing/internal/infrastructure/jobsapi"
	"job-listing/internal/scheduler"
	"job-listing/internal/usecase"
	"job-listing/internal/viewer"
	"job-listing/internal/ws"
)

// Container owns the long-lived components of the server.
type Container struct {
	Config    config.Config
	Logger    *log.Logger
	Cache     *cache.Redis
	Listing   *usecase.JobListing
	Sessions  *viewer.Store
	Hub       *ws.Hub
	Scheduler *scheduler.Scheduler

	ctx    context.Context
	cancel context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	redis := cache.NewRedis(cache.Options{
		Enabled:    cfg.Redis.Enabled,
		Host:       cfg.Redis.Host,
		Port:       cfg.Redis.Port,
		Password:   cfg.Redis.Password,
		DefaultTTL: cfg.Redis.TTL,
	}, logger)

	client := jobsapi.NewClient(cfg.JobsAPI.BaseURL, logger)

	var jobsCache usecase.JobsCache
	if redis.Available() {
		jobsCache = redis
	}
	listing := usecase.NewJobListingUsecase(client, jobsCache, cfg.Redis.TTL, logger)

	sessions := viewer.NewStore(cfg.Viewer.SearchDebounce, logger)
	hub := ws.NewHub(logger)

	warmSpec := cfg.Viewer.CacheWarmSpec
	if jobsCache == nil {
		warmSpec = ""
	}
	sched := scheduler.New(scheduler.Options{
		SweepSpec: cfg.Viewer.SweepSpec,
		IdleTTL:   cfg.Viewer.SessionIdleTTL,
		WarmSpec:  warmSpec,
	}, sessions, hub, listing, logger)

	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Cache:     redis,
		Listing:   listing,
		Sessions:  sessions,
		Hub:       hub,
		Scheduler: sched,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Context is cancelled by Close and bounds background work such as
// session page fetches.
func (c *Container) Context() context.Context {
	return c.ctx
}

func (c *Container) Start() error {
	go c.Hub.Run()
	return c.Scheduler.Start(c.ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Scheduler.Stop()
	c.cancel()
	c.Sessions.CloseAll()
	c.Hub.Stop()
	return c.Cache.Close()
}
