package jobsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"job-listing/internal/domain/job"
)

const (
	DefaultBaseURL = "https://www.themuse.com/api/public/jobs"

	maxBodyBytes = 5 << 20
	userAgent    = "JobListing/0.1"
)

type JobsClient interface {
	FetchJobs(ctx context.Context, page int) ([]*job.Job, error)
}

// StatusError is returned for any non-2xx response from the jobs API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

type httpJobsClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient returns a client for the public jobs endpoint at baseURL. The
// underlying http.Client has no timeout; callers bound a fetch through ctx.
func NewClient(baseURL string, logger *log.Logger) JobsClient {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &httpJobsClient{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

func (c *httpJobsClient) FetchJobs(ctx context.Context, page int) ([]*job.Job, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil jobs client")
	}
	if page <= 0 {
		page = 1
	}

	endpoint, err := pageURL(c.baseURL, page)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Printf("[JobsAPI] FetchJobs error endpoint=%s status=%d", endpoint, resp.StatusCode)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := readAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("read jobs body: %w", err)
	}

	var out pageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode jobs body: %w", err)
	}

	jobs := normalize(out.Results)
	if c.logger != nil {
		c.logger.Printf("[JobsAPI] FetchJobs ok endpoint=%s jobs=%d", endpoint, len(jobs))
	}
	return jobs, nil
}

func pageURL(base string, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid jobs api url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}

var _ JobsClient = (*httpJobsClient)(nil)
