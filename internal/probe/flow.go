package probe

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/okian/mergington/pkg/logger"
)

// unknownActivity is a name no catalog is expected to contain.
const unknownActivity = "DoesNotExist"

// NewEmail returns a unique probe email so repeated runs never collide.
func NewEmail(domain string) string {
	return "probe-" + uuid.NewString() + "@" + domain
}

// step is one request of the lifecycle flow and its expected outcome.
type step struct {
	name       string
	run        func(ctx context.Context) (Result, error)
	wantStatus int
	wantText   string
}

// RunFlow walks one email through sign-up, duplicate, cancel and repeat
// cancel, listing the roster in between, then checks the unknown-activity path.
func RunFlow(ctx context.Context, c *Client, activity, email string, stats *Stats) error {
	log := logger.Named("probe")

	expectRoster := func(want bool) error {
		activities, err := c.List(ctx)
		if err != nil {
			return err
		}
		a, ok := activities[activity]
		if !ok {
			return fmt.Errorf("%w: activity %q missing from list", ErrVerification, activity)
		}
		if got := slices.Contains(a.Participants, email); got != want {
			atomic.AddInt64(&stats.Unexpected, 1)
			return fmt.Errorf("%w: %s on %s roster = %t, want %t", ErrVerification, email, activity, got, want)
		}
		return nil
	}

	if err := expectRoster(false); err != nil {
		return err
	}

	steps := []step{
		{"signup", func(ctx context.Context) (Result, error) { return c.Signup(ctx, activity, email) }, http.StatusOK, "Signed up"},
		{"duplicate signup", func(ctx context.Context) (Result, error) { return c.Signup(ctx, activity, email) }, http.StatusBadRequest, ""},
		{"cancel", func(ctx context.Context) (Result, error) { return c.Cancel(ctx, activity, email) }, http.StatusOK, "Removed"},
		{"repeat cancel", func(ctx context.Context) (Result, error) { return c.Cancel(ctx, activity, email) }, http.StatusBadRequest, ""},
		{"unknown signup", func(ctx context.Context) (Result, error) { return c.Signup(ctx, unknownActivity, email) }, http.StatusNotFound, ""},
		{"unknown cancel", func(ctx context.Context) (Result, error) { return c.Cancel(ctx, unknownActivity, email) }, http.StatusNotFound, ""},
	}

	for i, s := range steps {
		res, err := s.run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		if err := check(s, res); err != nil {
			atomic.AddInt64(&stats.Unexpected, 1)
			return err
		}
		stats.StepsPassed++
		log.Info(ctx, "step passed", logger.String("step", s.name), logger.Int("status", res.Status))

		// roster must reflect each accepted mutation immediately
		switch i {
		case 0:
			atomic.AddInt64(&stats.Signups, 1)
			if err := expectRoster(true); err != nil {
				return err
			}
		case 2:
			atomic.AddInt64(&stats.Cancels, 1)
			if err := expectRoster(false); err != nil {
				return err
			}
		}
	}
	return nil
}

func check(s step, res Result) error {
	if res.Status != s.wantStatus {
		return fmt.Errorf("%w: %s returned %d (%s), want %d", ErrUnexpectedStatus, s.name, res.Status, res.Detail, s.wantStatus)
	}
	if s.wantText != "" && !strings.Contains(res.Message, s.wantText) {
		return fmt.Errorf("%w: %s message %q lacks %q", ErrVerification, s.name, res.Message, s.wantText)
	}
	if res.Status != http.StatusOK && res.Detail == "" {
		return fmt.Errorf("%w: %s error body has no detail", ErrVerification, s.name)
	}
	return nil
}
