package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/mergington/internal/probe"
	"github.com/okian/mergington/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		activity   = flag.String("activity", "Programming Class", "Activity to probe")
		domain     = flag.String("domain", "example.com", "Domain of generated probe emails")
		concurrent = flag.Int("concurrent", 0, "Distinct emails to sign up and cancel in parallel")
		race       = flag.Int("race", 0, "Goroutines racing to sign up the same email")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		jsonLogs   = flag.Bool("json", false, "Log as JSON")
		verbose    = flag.Bool("verbose", false, "Log every request")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	format := logger.FormatText
	if *jsonLogs {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:       *baseURL,
		Activity:      *activity,
		EmailDomain:   *domain,
		Concurrent:    *concurrent,
		DuplicateRace: *race,
		Timeout:       *timeout,
		Verbose:       *verbose,
	}

	if _, err := probe.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		os.Exit(1)
	}
}
