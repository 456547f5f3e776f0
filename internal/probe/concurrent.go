package probe

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/okian/mergington/pkg/logger"
)

// RunConcurrent signs up n distinct emails in parallel, cancels them all and
// checks that the roster ends where it started.
func RunConcurrent(ctx context.Context, c *Client, activity, domain string, n int, stats *Stats) error {
	before, err := roster(ctx, c, activity)
	if err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		failures int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			email := NewEmail(domain)

			res, err := c.Signup(ctx, activity, email)
			if err != nil || res.Status != http.StatusOK {
				atomic.AddInt64(&failures, 1)
				return
			}
			atomic.AddInt64(&stats.Signups, 1)

			res, err = c.Cancel(ctx, activity, email)
			if err != nil || res.Status != http.StatusOK {
				atomic.AddInt64(&failures, 1)
				return
			}
			atomic.AddInt64(&stats.Cancels, 1)
		}()
	}
	wg.Wait()

	if failures > 0 {
		atomic.AddInt64(&stats.Unexpected, failures)
		return fmt.Errorf("%w: %d of %d concurrent round trips failed", ErrVerification, failures, n)
	}

	after, err := roster(ctx, c, activity)
	if err != nil {
		return err
	}
	if !slices.Equal(before, after) {
		return fmt.Errorf("%w: roster changed after round trips: before %v, after %v", ErrVerification, before, after)
	}

	logger.Named("probe").Info(ctx, "concurrent round trips passed", logger.Int("emails", n))
	return nil
}

// RunDuplicateRace has n goroutines sign up the same email at once and checks
// that exactly one succeeds.
func RunDuplicateRace(ctx context.Context, c *Client, activity, domain string, n int, stats *Stats) error {
	email := NewEmail(domain)

	var (
		wg       sync.WaitGroup
		accepted int64
		rejected int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Signup(ctx, activity, email)
			switch {
			case err != nil:
			case res.Status == http.StatusOK:
				atomic.AddInt64(&accepted, 1)
			case res.Status == http.StatusBadRequest:
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	// leave the roster as we found it
	if accepted > 0 {
		if _, err := c.Cancel(ctx, activity, email); err != nil {
			return err
		}
		atomic.AddInt64(&stats.Cancels, 1)
	}
	atomic.AddInt64(&stats.Signups, accepted)

	if accepted != 1 || accepted+rejected != int64(n) {
		atomic.AddInt64(&stats.Unexpected, 1)
		return fmt.Errorf("%w: %d racing sign-ups: %d accepted, %d rejected, want exactly 1 accepted",
			ErrVerification, n, accepted, rejected)
	}

	logger.Named("probe").Info(ctx, "duplicate race passed", logger.Int("racers", n))
	return nil
}

func roster(ctx context.Context, c *Client, activity string) ([]string, error) {
	activities, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := activities[activity]
	if !ok {
		return nil, fmt.Errorf("%w: activity %q missing from list", ErrVerification, activity)
	}
	return a.Participants, nil
}
