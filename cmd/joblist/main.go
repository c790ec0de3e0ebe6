package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"job-listing/internal/infrastructure/jobsapi"
	"job-listing/internal/search"
	"job-listing/internal/usecase"
	"job-listing/internal/viewer"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaultAPI := strings.TrimSpace(os.Getenv("JOBS_API_URL"))
	if defaultAPI == "" {
		defaultAPI = jobsapi.DefaultBaseURL
	}

	fs := flag.NewFlagSet("joblist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	query := fs.String("search", "", "free-text search over title, company and description")
	category := fs.String("category", "all", "exact category name")
	jobType := fs.String("type", "all", "job type, e.g. Full-time")
	remote := fs.Bool("remote", false, "only jobs with a remote location")
	listCategories := fs.Bool("categories", false, "print the categories of the page and exit")
	apiURL := fs.String("api", defaultAPI, "jobs API endpoint")
	timeout := fs.Duration("timeout", 0, "fetch deadline, 0 waits indefinitely")
	verbose := fs.Bool("v", false, "log fetch details to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(stderr, "", log.LstdFlags)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	uc := usecase.NewJobListingUsecase(jobsapi.NewClient(*apiURL, logger), nil, 0, logger)
	jobs, err := uc.LoadJobs(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *listCategories {
		for _, c := range uc.Categories(jobs) {
			fmt.Fprintln(stdout, c)
		}
		return 0
	}

	st := viewer.NewState().Loaded(jobs).WithCriteria(search.Criteria{
		SearchQuery: *query,
		Category:    *category,
		JobType:     *jobType,
		RemoteOnly:  *remote,
	})
	printView(stdout, viewer.Render(st))
	return 0
}

func printView(w io.Writer, v viewer.View) {
	fmt.Fprintln(w, v.Header)
	if v.Empty != "" {
		fmt.Fprintln(w, v.Empty)
		return
	}
	for _, c := range v.Cards {
		fmt.Fprintf(w, "- %s | %s | %s | %s\n", c.Name, c.Company, c.Location, c.Categories)
	}
}
