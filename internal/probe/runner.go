package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// Run executes the complete probe.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("probe")

	log.Info(ctx, "starting roster probe",
		logger.String("baseURL", config.BaseURL),
		logger.String("activity", config.Activity),
		logger.Int("concurrent", config.Concurrent),
		logger.Int("duplicateRace", config.DuplicateRace),
		logger.String("timeout", config.Timeout.String()),
	)

	client := NewClient(config.BaseURL, config.Timeout, stats, config.Verbose)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Lifecycle flow
	if err := RunFlow(ctx, client, config.Activity, NewEmail(config.EmailDomain), stats); err != nil {
		return stats, fmt.Errorf("lifecycle flow failed: %w", err)
	}

	// Step 3: Parallel round trips
	if config.Concurrent > 0 {
		if err := RunConcurrent(ctx, client, config.Activity, config.EmailDomain, config.Concurrent, stats); err != nil {
			return stats, fmt.Errorf("concurrent round trips failed: %w", err)
		}
	}

	// Step 4: Duplicate race
	if config.DuplicateRace > 0 {
		if err := RunDuplicateRace(ctx, client, config.Activity, config.EmailDomain, config.DuplicateRace, stats); err != nil {
			return stats, fmt.Errorf("duplicate race failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Named("probe").Info(ctx, "final statistics",
		logger.Int("requests", int(stats.Requests)),
		logger.Int("signups", int(stats.Signups)),
		logger.Int("cancels", int(stats.Cancels)),
		logger.Int("rejections", int(stats.Rejections)),
		logger.Int("unexpected", int(stats.Unexpected)),
		logger.Int("stepsPassed", stats.StepsPassed),
		logger.String("duration", stats.Duration.String()),
	)
}
