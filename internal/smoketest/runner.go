// Package smoketest drives a concurrent end-to-end roster check against a
// running activities service.
package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// Run executes the complete smoke test and returns its statistics.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg.Normalize()
	log := logger.Named("smoke")
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout, cfg.RPS)

	log.Info(ctx, "starting smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("activity", cfg.Activity),
		logger.Int("workers", cfg.Workers),
		logger.Int("rounds", cfg.Rounds),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Float64("rps", cfg.RPS))

	// Step 1: service health
	if err := client.Health(ctx); err != nil {
		return stats, err
	}
	log.Info(ctx, "service is healthy")

	// Step 2: target activity exists
	acts, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing activities: %w", err)
	}
	if _, ok := acts[cfg.Activity]; !ok {
		return stats, fmt.Errorf("%w: %q", ErrActivityMissing, cfg.Activity)
	}
	log.Info(ctx, "activities listed", logger.Int("count", len(acts)))

	emails := make([]string, cfg.Rounds)
	for i := range emails {
		emails[i] = NewEmail()
	}

	// Step 3: concurrent signups
	stats.Signups, stats.SignupsFailed = forEach(ctx, cfg.Workers, emails, func(ctx context.Context, email string) bool {
		return roundTrip(ctx, log, cfg.Verbose, "signup", email, func(ctx context.Context) (int, []byte, error) {
			return client.Signup(ctx, cfg.Activity, email)
		})
	})
	if stats.SignupsFailed > 0 || stats.Signups != len(emails) {
		return stats, fmt.Errorf("%w: %d of %d signups succeeded", ErrUnexpectedStatus, stats.Signups, len(emails))
	}

	// Step 4: repeat signup is rejected with a detail for the client
	status, body, err := client.Signup(ctx, cfg.Activity, emails[0])
	if err != nil {
		return stats, err
	}
	if err := expectRejection(status, body, http.StatusBadRequest, "repeat signup"); err != nil {
		return stats, err
	}
	stats.Rejections++

	// Step 5: every signup is listed once
	if err := verifyRoster(ctx, client, cfg.Activity, emails, true); err != nil {
		return stats, err
	}
	log.Info(ctx, "signups verified", logger.Int("count", len(emails)))

	// Step 6: concurrent removals, then a repeat removal is 404
	stats.Removals, stats.RemovalsFailed = forEach(ctx, cfg.Workers, emails, func(ctx context.Context, email string) bool {
		return roundTrip(ctx, log, cfg.Verbose, "remove", email, func(ctx context.Context) (int, []byte, error) {
			return client.Remove(ctx, cfg.Activity, email)
		})
	})
	if stats.RemovalsFailed > 0 || stats.Removals != len(emails) {
		return stats, fmt.Errorf("%w: %d of %d removals succeeded", ErrUnexpectedStatus, stats.Removals, len(emails))
	}
	status, body, err = client.Remove(ctx, cfg.Activity, emails[0])
	if err != nil {
		return stats, err
	}
	if err := expectRejection(status, body, http.StatusNotFound, "repeat removal"); err != nil {
		return stats, err
	}
	stats.Rejections++

	// Step 7: roster is back to its prior state
	if err := verifyRoster(ctx, client, cfg.Activity, emails, false); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logFinalStats(ctx, log, stats)
	return stats, nil
}

func roundTrip(ctx context.Context, log logger.Logger, verbose bool, op, email string, call func(context.Context) (int, []byte, error)) bool {
	err := expectStatus(ctx, http.StatusOK, op, call)
	if err != nil {
		log.Warn(ctx, "request failed", logger.String("operation", op), logger.String("email", email), logger.Error(err))
		return false
	}
	if verbose {
		log.Debug(ctx, "request ok", logger.String("operation", op), logger.String("email", email))
	}
	return true
}

func expectRejection(status int, body []byte, want int, what string) error {
	if status != want {
		return fmt.Errorf("%w: %s returned %d, want %d", ErrUnexpectedStatus, what, status, want)
	}
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("failed to decode %s error: %w", what, err)
	}
	if e.Detail == "" {
		return fmt.Errorf("%w: %s error has no detail", ErrVerification, what)
	}
	return nil
}

// logFinalStats prints the final run statistics.
func logFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var requestsPerSecond float64
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Signups+stats.Removals) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("signups", stats.Signups),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("removals", stats.Removals),
		logger.Int("removalsFailed", stats.RemovalsFailed),
		logger.Int("expectedRejections", stats.Rejections),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
